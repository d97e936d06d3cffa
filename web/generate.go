package web

import (
	"net/http"

	"cardserver/handlers"
	"cardserver/models"

	"github.com/gin-gonic/gin"
)

// GenerateView renders the card form: one input per editable field of each
// side plus the photo upload.
func GenerateView(c *gin.Context) {
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	if !cfg.Ready() {
		c.HTML(http.StatusOK, "generate.tmpl", gin.H{"ready": false})
		return
	}
	front, err := models.FieldsForSide(models.SideFront)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	back, err := models.FieldsForSide(models.SideBack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	c.HTML(http.StatusOK, "generate.tmpl", gin.H{
		"ready":     true,
		"front":     editableOnly(front),
		"back":      editableOnly(back),
		"hasRegion": cfg.PhotoRegionSet,
	})
}

func editableOnly(fields []models.Field) []models.Field {
	result := make([]models.Field, 0, len(fields))
	for _, f := range fields {
		if f.Editable {
			result = append(result, f)
		}
	}
	return result
}

func ResultView(c *gin.Context) {
	token := c.Param("token")
	gen, err := models.GenerationByToken(token)
	if err != nil {
		c.JSON(http.StatusNotFound, handlers.Response{Error: "Not Found"})
		return
	}
	c.HTML(http.StatusOK, "result.tmpl", gin.H{
		"token":    gen.Token,
		"name":     gen.PersonName,
		"number":   gen.PersonNumber,
		"hasPhoto": gen.PhotoThumbPath != "",
	})
}
