package web

import (
	"net/http"

	"cardserver/handlers"
	"cardserver/models"

	"github.com/gin-gonic/gin"
)

// AdminView is the landing page: setup status plus recent generations.
func AdminView(c *gin.Context) {
	cfg, err := models.LoadSystemConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	count, err := models.CountGenerations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	recent, err := models.LatestGenerations(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	c.HTML(http.StatusOK, "admin.tmpl", gin.H{
		"hasFront":  cfg.TemplatePath(models.SideFront) != "",
		"hasBack":   cfg.TemplatePath(models.SideBack) != "",
		"hasRegion": cfg.PhotoRegionSet,
		"ready":     cfg.Ready(),
		"count":     count,
		"recent":    recent,
	})
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
