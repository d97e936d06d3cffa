package web

import (
	"net/http"

	"cardserver/handlers"
	"cardserver/models"

	"github.com/gin-gonic/gin"
)

// ConfigureView lets the operator upload templates and tune the field
// schema of both sides.
func ConfigureView(c *gin.Context) {
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
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	c.HTML(http.StatusOK, "configure.tmpl", gin.H{
		"front":    front,
		"back":     back,
		"hasFront": cfg.TemplatePath(models.SideFront) != "",
		"hasBack":  cfg.TemplatePath(models.SideBack) != "",
	})
}

// PhotoAreaView shows the front preview and lets the operator click two
// corners of the photo rectangle. The page reads the X-Preview-Scale header
// off the preview response and submits it along with the coordinates.
func PhotoAreaView(c *gin.Context) {
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	if cfg.TemplatePath(models.SideFront) == "" {
		c.HTML(http.StatusOK, "photo_area.tmpl", gin.H{"hasFront": false})
		return
	}
	region := cfg.PhotoRegion()
	data := gin.H{"hasFront": true, "hasRegion": region != nil}
	if region != nil {
		data["x1"] = region.Min.X
		data["y1"] = region.Min.Y
		data["x2"] = region.Max.X
		data["y2"] = region.Max.Y
	}
	c.HTML(http.StatusOK, "photo_area.tmpl", data)
}
