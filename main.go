package main

import (
	"log"
	"strings"
	"time"

	"cardserver/config"
	"cardserver/db"
	"cardserver/handlers"
	"cardserver/models"
	"cardserver/storage"
	"cardserver/utils"
	"cardserver/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	db.Init()
	models.Init()
	storage.Init()
	handlers.Init()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length", "X-Preview-Scale"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/template/preview", "/generation/download"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that

	// Template handlers
	router.POST("/template/upload", handlers.TemplateUpload)
	router.GET("/template/preview", handlers.TemplatePreview)
	// Field schema handlers
	router.GET("/field/list", handlers.FieldList)
	router.POST("/field/save", handlers.FieldSave)
	// Photo area
	router.POST("/region/save", handlers.PhotoRegionSave)
	// Card generation
	router.POST("/generate", handlers.Generate)
	router.GET("/generation/list", handlers.GenerationList)
	router.GET("/generation/download", handlers.GenerationDownload)

	/*
	 *	Web interface
	 */
	router.GET("/", web.AdminView)
	router.GET("/w/configure", web.ConfigureView)
	router.GET("/w/photo-area", web.PhotoAreaView)
	router.GET("/w/generate", web.GenerateView)
	router.GET("/w/result/:token", web.ResultView)
	// Misc
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
