package handlers

import (
	"bytes"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"cardserver/config"
	"cardserver/models"
	"cardserver/psd"
	"cardserver/render"
	"cardserver/storage"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type cachedPreview struct {
	PNG   []byte
	Scale float64
}

// Composited previews keyed by side; invalidated on template upload.
var previewCache = cmap.New[cachedPreview]()

// TemplateUpload stores a new PSD for one side and rebuilds that side's
// field schema from its text layers. Re-uploading replaces the previous
// template and schema wholesale.
func TemplateUpload(c *gin.Context) {
	side := c.PostForm("side")
	if !models.ValidSide(side) {
		c.JSON(http.StatusBadRequest, Response{"'side' must be 'front' or 'back'"})
		return
	}
	file, err := c.FormFile("template")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"missing 'template' file"})
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	defer reader.Close()

	store := storage.GetDefaultStorage()
	path := storage.LocationTemplates + "/" + side + ".psd"
	if _, err = store.Save(path, reader); err != nil {
		log.Printf("Cannot save template %s: %v", path, err)
		c.JSON(http.StatusInternalServerError, Response{"cannot save template"})
		return
	}
	if err = store.UpdateRemoteFile(path, "image/vnd.adobe.photoshop"); err != nil {
		log.Printf("Cannot upload template %s: %v", path, err)
		c.JSON(http.StatusInternalServerError, Response{"cannot save template"})
		return
	}
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	cfg.SetTemplatePath(side, path)
	if err = cfg.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	previewCache.Remove(side)

	regions, err := psd.Parse(store.GetFullPath(path))
	if err != nil {
		// The template reference is saved but the previous schema stays
		// untouched; the operator can retry with a valid file.
		log.Printf("Template parse failed for %s: %v", path, err)
		c.JSON(http.StatusUnprocessableEntity, Response{err.Error()})
		return
	}
	count, err := models.ReplaceFields(side, regions)
	if err != nil {
		log.Printf("Cannot replace fields for side %s: %v", side, err)
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"side": side, "fields": count})
}

// TemplatePreview serves a downscaled snapshot of one side. The scale factor
// is exposed in the X-Preview-Scale header - the photo-area selection maps
// its coordinates back through it.
func TemplatePreview(c *gin.Context) {
	side := c.Query("side")
	if !models.ValidSide(side) {
		c.JSON(http.StatusBadRequest, Response{"'side' must be 'front' or 'back'"})
		return
	}
	if cached, ok := previewCache.Get(side); ok {
		servePreview(c, cached)
		return
	}
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	path := cfg.TemplatePath(side)
	if path == "" {
		c.JSON(http.StatusNotFound, Response{"no template uploaded for side " + side})
		return
	}
	store := storage.GetDefaultStorage()
	if err = store.EnsureLocalFile(path); err != nil {
		log.Printf("Cannot fetch template %s: %v", path, err)
		c.JSON(http.StatusInternalServerError, Response{"cannot read template"})
		return
	}
	defer store.ReleaseLocalFile(path)

	base, err := psd.Composite(store.GetFullPath(path))
	if err != nil {
		log.Printf("Template composite failed for %s: %v", path, err)
		c.JSON(http.StatusUnprocessableEntity, Response{err.Error()})
		return
	}
	img, scale := render.Preview(base, config.PREVIEW_MAX_WIDTH, config.PREVIEW_MAX_HEIGHT)
	buf := bytes.Buffer{}
	if err = png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	cached := cachedPreview{PNG: buf.Bytes(), Scale: scale}
	previewCache.Set(side, cached)
	servePreview(c, cached)
}

func servePreview(c *gin.Context, p cachedPreview) {
	c.Header("X-Preview-Scale", strconv.FormatFloat(p.Scale, 'f', -1, 64))
	c.Data(http.StatusOK, "image/png", p.PNG)
}
