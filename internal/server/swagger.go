package server

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/bakerapp/baker/docs/swagger" // generated API docs
)

//go:generate swag init -g internal/server/swagger.go -o docs/swagger

// @title Baker API
// @version 0.1
// @description Interactive documentation for the Baker daemon API surface.
// @contact.name Baker Maintainers
// @contact.url https://github.com/bakerapp/baker
// @BasePath /

func (s *Server) mountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
