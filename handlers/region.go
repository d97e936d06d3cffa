package handlers

import (
	"net/http"

	"cardserver/models"
	"cardserver/render"

	"github.com/gin-gonic/gin"
)

type photoRegionRequest struct {
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale" binding:"required"`
}

// PhotoRegionSave persists the photo rectangle drawn on the front-side
// preview. Coordinates arrive in preview space together with the preview
// scale factor and are mapped back to base-image space before being saved.
func PhotoRegionSave(c *gin.Context) {
	var req photoRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	region, err := render.SelectionToRegion(req.X1, req.Y1, req.X2, req.Y2, req.Scale)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	cfg.SetPhotoRegion(region)
	if err = cfg.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"x1": region.Min.X,
		"y1": region.Min.Y,
		"x2": region.Max.X,
		"y2": region.Max.Y,
	})
}
