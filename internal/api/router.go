package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-column-rules/docs"
	"go-column-rules/internal/api/handler"
	"go-column-rules/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	// Endpoints the rules pages talk to
	r.POST("/save-file", h.SaveFile)
	r.POST("/save", h.UploadDataset)
	r.GET("/columns", h.GetColumns)
	r.GET("/next", h.Next)

	r.GET("/api/v1/submissions", h.ListSubmissions)
	// More specific routes first
	r.GET("/api/v1/submissions/*/errors", h.GetSubmissionErrors)
	r.POST("/api/v1/submissions/*/apply", h.ApplySubmission)
	// Generic submission route last
	r.GET("/api/v1/submissions/*", h.GetSubmission)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
