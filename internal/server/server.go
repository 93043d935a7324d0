package server

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var indexPage []byte

const (
	readHeaderTimeout = 10 * time.Second
	// Report runs hold the response open for the whole pipeline, so the
	// write timeout has to cover the slowest multi-chunk run.
	writeTimeout = 15 * time.Minute
)

// NewRouter wires the HTTP surface: the embedded page, the model and
// featured-video APIs, and the streaming report endpoint.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", h.IndexPage)

	api := router.Group("/api")
	api.GET("/models", h.ListModels)
	api.GET("/featured", h.ListFeatured)
	api.POST("/featured", h.AddFeatured)
	api.DELETE("/featured/:id", h.RemoveFeatured)
	api.POST("/reports", h.CreateReport)

	return router
}

// New builds the http.Server around the router with timeouts suited to
// long-lived report streams.
func New(port int, h *Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewRouter(h),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
}
