package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niksmo/catalog/internal/core/port"
)

func NewRouter(catalog port.ProductsCatalog) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(LogRequests)
	r.Use(middleware.Recoverer)
	r.Use(AllowJSON)

	RegisterCatalog(r, catalog)
	return r
}
