package controller

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter define all routes of the api
func NewRouter(apiController APIController) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type, Content-Length, Accept-Encoding, Host, accept, Origin, Cache-Control, X-Requested-With"},
			MaxAge:       12 * time.Hour,
		}),
	)

	api := router.Group("")
	{
		api.GET("/languages", apiController.GetLanguages)
	}

	return router
}
