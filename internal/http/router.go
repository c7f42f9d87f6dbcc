// Package http assembles the gin engine for the admin hubs.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/handlers/admin"
	"pehlione.com/admin/internal/http/handlers/api"
	"pehlione.com/admin/internal/http/handlers/health"
	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/hub"
	"pehlione.com/admin/internal/modules/products"
	"pehlione.com/admin/internal/wizard"
)

type Deps struct {
	Logger   *slog.Logger
	Registry *hub.Registry
	Wizards  *wizard.Store
	Flash    *flash.Codec
	// Products enables the image endpoints when set.
	Products *products.Service
	DB       health.Pinger

	AdminToken string
	PageSize   int

	// UploadDir is served under UploadPrefix for the local storage driver.
	UploadDir    string
	UploadPrefix string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		// outside Recovery so a recovered panic is still rendered
		middleware.ErrorHandler(d.Logger, d.Flash),
		middleware.Recovery(d.Logger),
		middleware.FlashMiddleware(d.Flash),
		middleware.Notices(),
	)

	r.GET("/healthz", health.Handler{DB: d.DB}.Check)
	if d.UploadDir != "" && d.UploadPrefix != "" {
		r.Static(d.UploadPrefix, d.UploadDir)
	}

	auth := middleware.RequireToken(d.AdminToken)

	hubs := admin.NewHubsHandler(d.Registry, d.Wizards, d.Flash, d.PageSize)
	wiz := admin.NewWizardsHandler(d.Registry, d.Wizards, d.Flash)

	ag := r.Group("/admin", auth)
	{
		ag.GET("/hubs", hubs.Index)
		ag.GET("/hubs/:hub", hubs.Dispatch)
		ag.GET("/hubs/:hub/*path", hubs.Dispatch)
		ag.POST("/hubs/:hub/bulk", hubs.Bulk)
		ag.DELETE("/hubs/:hub/:id", hubs.Delete)

		ag.POST("/wizards", wiz.Start)
		ag.GET("/wizards/:id", wiz.Show)
		ag.PATCH("/wizards/:id/fields", wiz.Change)
		ag.POST("/wizards/:id/blur", wiz.Blur)
		ag.POST("/wizards/:id/next", wiz.Next)
		ag.POST("/wizards/:id/back", wiz.Back)
		ag.POST("/wizards/:id/submit", wiz.Submit)
		ag.DELETE("/wizards/:id", wiz.Cancel)
	}

	res := api.NewResourcesHandler(d.Registry, d.PageSize)
	apig := r.Group("/api", auth)
	{
		if d.Products != nil {
			img := api.NewImagesHandler(d.Products)
			apig.POST("/products/:id/images", img.Upload)
			apig.DELETE("/products/:id/images/:imageID", img.Delete)
		}
		apig.GET("/:entity", res.List)
		apig.POST("/:entity", res.Create)
		apig.GET("/:entity/:id", res.Get)
		apig.PUT("/:entity/:id", res.Update)
		apig.DELETE("/:entity/:id", res.Delete)
	}

	return r
}
