package handlers

import (
	"bytes"
	"errors"
	"image"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"cardserver/models"
	"cardserver/psd"
	"cardserver/render"
	"cardserver/storage"
	"cardserver/utils"

	"github.com/gin-gonic/gin"

	_ "image/jpeg"
	_ "image/png"
)

const photoThumbSize = 320

// Generate composes both card sides from the submitted field values and an
// optional photo. Both sides are rendered in memory first; nothing is written
// and no history row is created unless the whole render succeeds.
func Generate(c *gin.Context) {
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if !cfg.Ready() {
		c.JSON(http.StatusConflict, Response{render.ErrMissingTemplate.Error()})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	values := map[string]string{}
	for key, vals := range form.Value {
		if len(vals) > 0 {
			values[key] = strings.TrimSpace(vals[0])
		}
	}
	photo, photoHeader, err := decodePhoto(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}

	frontFields, err := models.FieldsForSide(models.SideFront)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	backFields, err := models.FieldsForSide(models.SideBack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}

	store := storage.GetDefaultStorage()
	// The photo goes on the front only; the back renders text alone.
	frontImg, err := composeSide(store, cfg, models.SideFront, frontFields, values, photo, cfg.PhotoRegion())
	if err != nil {
		respondComposeError(c, err)
		return
	}
	backImg, err := composeSide(store, cfg, models.SideBack, backFields, values, nil, nil)
	if err != nil {
		respondComposeError(c, err)
		return
	}

	name, number := personDetails(frontFields, values)
	gen := models.NewGeneration(name, number)
	gen.FrontPath = storage.LocationCards + "/" + gen.Token + "_front.png"
	gen.BackPath = storage.LocationCards + "/" + gen.Token + "_back.png"

	if err = writeCard(store, frontImg, gen.FrontPath); err != nil {
		respondComposeError(c, err)
		return
	}
	if err = writeCard(store, backImg, gen.BackPath); err != nil {
		store.Delete(gen.FrontPath)
		store.DeleteRemoteFile(gen.FrontPath)
		respondComposeError(c, err)
		return
	}
	if photoHeader != nil {
		savePhoto(store, &gen, photoHeader)
	}
	if err = gen.Create(); err != nil {
		// Keep disk and history in agreement.
		store.Delete(gen.FrontPath)
		store.Delete(gen.BackPath)
		store.DeleteRemoteFile(gen.FrontPath)
		store.DeleteRemoteFile(gen.BackPath)
		log.Printf("Cannot record generation %s: %v", gen.Token, err)
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": gen.Token,
		"front": "/generation/download?token=" + gen.Token + "&side=front",
		"back":  "/generation/download?token=" + gen.Token + "&side=back",
	})
}

func GenerationList(c *gin.Context) {
	gens, err := models.LatestGenerations(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gens)
}

// GenerationDownload serves a rendered side (or the photo thumbnail) of a
// past generation, looked up by its token. Pass dl=1 to force a download.
func GenerationDownload(c *gin.Context) {
	gen, err := models.GenerationByToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, Response{"no such generation"})
		return
	}
	side := c.Query("side")
	var path string
	switch side {
	case models.SideFront:
		path = gen.FrontPath
	case models.SideBack:
		path = gen.BackPath
	case "photo":
		path = gen.PhotoThumbPath
	default:
		c.JSON(http.StatusBadRequest, Response{"'side' must be 'front', 'back' or 'photo'"})
		return
	}
	if path == "" {
		c.JSON(http.StatusNotFound, Response{"not available for this generation"})
		return
	}
	store := storage.GetDefaultStorage()
	if err = store.EnsureLocalFile(path); err != nil {
		log.Printf("Cannot fetch %s: %v", path, err)
		c.JSON(http.StatusNotFound, Response{"file is gone"})
		return
	}
	if c.Query("dl") == "1" {
		c.Header("Content-Disposition", "attachment; filename="+gen.Token+"_"+side+filepath.Ext(path))
	}
	store.Serve(path, c.Request, c.Writer)
}

func composeSide(store storage.StorageAPI, cfg *models.SystemConfig, side string, fields []models.Field, values map[string]string, photo image.Image, region *image.Rectangle) (image.Image, error) {
	path := cfg.TemplatePath(side)
	if err := store.EnsureLocalFile(path); err != nil {
		return nil, &render.CompositionError{Op: "load template " + side, Err: err}
	}
	defer store.ReleaseLocalFile(path)
	base, err := psd.Composite(store.GetFullPath(path))
	if err != nil {
		return nil, err
	}
	return render.Compose(base, fields, values, photo, region, textFace)
}

func writeCard(store storage.StorageAPI, img image.Image, path string) error {
	if err := render.WriteAtomic(img, store.GetFullPath(path)); err != nil {
		return err
	}
	if err := store.UpdateRemoteFile(path, "image/png"); err != nil {
		return &render.CompositionError{Op: "upload " + path, Err: err}
	}
	return nil
}

func decodePhoto(form *multipart.Form) (image.Image, *multipart.FileHeader, error) {
	files := form.File["photo"]
	if len(files) == 0 {
		return nil, nil, nil
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, errors.New("cannot decode photo: " + err.Error())
	}
	return img, files[0], nil
}

// savePhoto keeps the submitted original and a thumbnail for the history
// page. Failures here are logged but never fail the generation - the cards
// are already rendered.
func savePhoto(store storage.StorageAPI, gen *models.Generation, header *multipart.FileHeader) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	f, err := header.Open()
	if err != nil {
		log.Printf("Cannot reopen photo: %v", err)
		return
	}
	defer f.Close()
	path := storage.LocationPhotos + "/" + gen.Token + ext
	if _, err = store.Save(path, f); err != nil {
		log.Printf("Cannot save photo %s: %v", path, err)
		return
	}
	if err = store.UpdateRemoteFile(path, header.Header.Get("Content-Type")); err != nil {
		log.Printf("Cannot upload photo %s: %v", path, err)
		return
	}
	gen.PhotoPath = path

	var orig, thumb bytes.Buffer
	if _, err = store.Load(path, &orig); err != nil {
		log.Printf("Cannot reload photo %s: %v", path, err)
		return
	}
	if _, err = utils.CreateThumb(photoThumbSize, &orig, &thumb); err != nil {
		log.Printf("Cannot create photo thumb for %s: %v", path, err)
		return
	}
	thumbPath := storage.LocationPhotos + "/" + gen.Token + "_thumb.jpg"
	if _, err = store.Save(thumbPath, &thumb); err != nil {
		log.Printf("Cannot save photo thumb %s: %v", thumbPath, err)
		return
	}
	if err = store.UpdateRemoteFile(thumbPath, "image/jpeg"); err != nil {
		log.Printf("Cannot upload photo thumb %s: %v", thumbPath, err)
		return
	}
	gen.PhotoThumbPath = thumbPath
}

func respondComposeError(c *gin.Context, err error) {
	log.Printf("Generation failed: %v", err)
	var parseErr *psd.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusUnprocessableEntity, Response{err.Error()})
		return
	}
	if errors.Is(err, render.ErrInvalidRegion) {
		c.JSON(http.StatusConflict, Response{err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{err.Error()})
}

// personDetails picks the values recorded in the history: the first filled
// front field is the display name, the field originally named "RG" (or the
// next filled one) the identifying number.
func personDetails(fields []models.Field, values map[string]string) (name, number string) {
	for _, f := range fields {
		v := values[f.OriginalName]
		if v == "" {
			continue
		}
		if strings.EqualFold(f.OriginalName, "rg") {
			number = v
			continue
		}
		if name == "" {
			name = v
		} else if number == "" {
			number = v
		}
	}
	return
}
