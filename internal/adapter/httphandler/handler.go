package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

// GET    api/v1/catalog                                      (200 OK)
// GET    api/v1/catalog/{id}                                 (200 OK, 404 Not found)
// GET    api/v1/catalog/GetProductByCategory/{category}      (200 OK)
// GET    api/v1/catalog/GetProductByName/{name}              (200 OK)
// POST   api/v1/catalog JSON                                 (201 Created, 400 Bad request)
// PUT    api/v1/catalog JSON                                 (200 OK, 400 Bad request)
// DELETE api/v1/catalog/{id}                                 (200 OK)
//
// {id} is a 24 hex characters ObjectID, other values do not match the route.

const catalogPath = "/api/v1/catalog"

const idPattern = "{id:[0-9a-fA-F]{24}}"

type CatalogHandler struct {
	catalog port.ProductsCatalog
}

func RegisterCatalog(r chi.Router, catalog port.ProductsCatalog) {
	h := CatalogHandler{catalog}
	r.Route(catalogPath, func(r chi.Router) {
		r.Get("/", h.GetProducts)
		r.Post("/", h.CreateProduct)
		r.Put("/", h.UpdateProduct)
		r.Get("/"+idPattern, h.GetProductByID)
		r.Delete("/"+idPattern, h.DeleteProduct)
		r.Get("/GetProductByCategory/{category}", h.GetProductsByCategory)
		r.Get("/GetProductByName/{name}", h.GetProductsByName)
	})
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.ListAll(r.Context())
	if err != nil {
		internalError(w, log, "failed to list products", err)
		return
	}

	respond(w, log, http.StatusOK, productsFromDomain(ps))
}

func (h CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductByID"
	log := slog.With("op", op)

	id := chi.URLParam(r, "id")
	p, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			log.Warn("product not found", "id", id)
			return
		}
		internalError(w, log, "failed to get product", err)
		return
	}

	respond(w, log, http.StatusOK, productFromDomain(p))
}

func (h CatalogHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductsByCategory"
	log := slog.With("op", op)

	ps, err := h.catalog.GetByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		internalError(w, log, "failed to get products by category", err)
		return
	}

	respond(w, log, http.StatusOK, productsFromDomain(ps))
}

func (h CatalogHandler) GetProductsByName(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductsByName"
	log := slog.With("op", op)

	ps, err := h.catalog.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		internalError(w, log, "failed to get products by name", err)
		return
	}

	respond(w, log, http.StatusOK, productsFromDomain(ps))
}

func (h CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.CreateProduct"
	log := slog.With("op", op)

	var v Product
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.catalog.Create(r.Context(), productToDomain(v))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProductID) {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			log.Warn("invalid product id", "id", v.ID)
			return
		}
		internalError(w, log, "failed to create product", err)
		return
	}

	w.Header().Set("Location", catalogPath+"/"+p.ID)
	respond(w, log, http.StatusCreated, productFromDomain(p))
	log.Info("created", "id", p.ID)
}

func (h CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.UpdateProduct"
	log := slog.With("op", op)

	var v Product
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	ok, err := h.catalog.Update(r.Context(), productToDomain(v))
	if err != nil {
		internalError(w, log, "failed to update product", err)
		return
	}

	respond(w, log, http.StatusOK, ok)
}

func (h CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.DeleteProduct"
	log := slog.With("op", op)

	ok, err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, log, "failed to delete product", err)
		return
	}

	respond(w, log, http.StatusOK, ok)
}

func respond(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func internalError(w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	http.Error(w, msg, http.StatusInternalServerError)
	log.Error(msg, "err", err)
}
