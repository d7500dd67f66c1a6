// Package rest exposes the product list controller over HTTP.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productdash/internal/product/model"
	"github.com/abgdnv/productdash/internal/product/service"
	"github.com/abgdnv/productdash/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// productTypeTag is the validator tag for fields holding a model.ProductType.
const productTypeTag = "producttype"

type Handler struct {
	controller service.ProductListController
	validate   *validator.Validate
	logger     *slog.Logger
}

// filterRequest is the body of the filter setters.
type filterRequest struct {
	Value string `json:"value"`
}

type typeFilterRequest struct {
	Value model.ProductType `json:"value" validate:"producttype"`
}

// sortResponse reports the direction a sort was applied in together with the
// direction the next sort will use.
type sortResponse struct {
	Applied  model.SortDirection `json:"applied_direction"`
	Next     model.SortDirection `json:"next_direction"`
	Products []model.Product     `json:"products"`
}

// NewHandler creates a new Handler forwarding requests to controller.
func NewHandler(controller service.ProductListController, logger *slog.Logger) *Handler {
	validate := validator.New()
	if err := validate.RegisterValidation(productTypeTag, validateProductType); err != nil {
		panic("failed to register product type validation: " + err.Error())
	}
	return &Handler{
		controller: controller,
		validate:   validate,
		logger:     logger.With("component", "rest"),
	}
}

func validateProductType(fl validator.FieldLevel) bool {
	_, err := model.ParseProductType(fl.Field().String())
	return err == nil
}

// RegisterRoutes registers the HTTP routes of the dashboard.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.VisibleProducts)
			r.Post("/", h.AddProduct)
			r.Get("/all", h.Products)
			r.Post("/sort", h.SortBy)
			r.Delete("/{id}", h.DeleteProduct)
		})
		r.Route("/view", func(r chi.Router) {
			r.Get("/", h.View)
			r.Put("/filters/name", h.SetNameFilter)
			r.Put("/filters/type", h.SetTypeFilter)
			r.Post("/form/toggle", h.ToggleAddForm)
		})
		r.Route("/draft", func(r chi.Router) {
			r.Get("/", h.Draft)
			r.Patch("/", h.UpdateDraft)
			r.Delete("/", h.CancelDraft)
			r.Post("/commit", h.CommitDraft)
		})
		r.Get("/product-types", h.ProductTypes)
	})

	r.Get("/healthz", h.HealthCheck)
}

// VisibleProducts lists the products that pass the current filters.
func (h *Handler) VisibleProducts(w http.ResponseWriter, r *http.Request) {
	list := h.controller.VisibleProducts(r.Context())
	h.logger.DebugContext(r.Context(), "Visible products listed", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// Products lists the whole collection.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.Products(r.Context()))
}

// AddProduct adds the draft in the request body as a new product.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	draft := service.DefaultDraft()
	if !web.DecodeValid(w, r, h.logger, h.validate, &draft) {
		return
	}
	created := h.controller.AddProduct(r.Context(), draft)
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

// DeleteProduct deletes a product by its ID. Deleting an unknown ID succeeds.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.controller.DeleteProduct(r.Context(), id)
	h.logger.InfoContext(r.Context(), "Product deleted", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// SortBy sorts the collection by the column in the key query parameter.
func (h *Handler) SortBy(w http.ResponseWriter, r *http.Request) {
	key, err := model.ParseSortKey(r.URL.Query().Get("key"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid sort key", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	applied := h.controller.SortBy(r.Context(), key)
	web.RespondJSON(w, h.logger, http.StatusOK, sortResponse{
		Applied:  applied,
		Next:     applied.Toggle(),
		Products: h.controller.VisibleProducts(r.Context()),
	})
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.View(r.Context()))
}

func (h *Handler) SetNameFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	h.controller.SetNameFilter(r.Context(), req.Value)
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.View(r.Context()))
}

func (h *Handler) SetTypeFilter(w http.ResponseWriter, r *http.Request) {
	var req typeFilterRequest
	if !web.DecodeValid(w, r, h.logger, h.validate, &req) {
		return
	}
	h.controller.SetTypeFilter(r.Context(), req.Value)
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.View(r.Context()))
}

func (h *Handler) ToggleAddForm(w http.ResponseWriter, r *http.Request) {
	h.controller.ToggleAddForm(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.View(r.Context()))
}

func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.View(r.Context()).Draft)
}

// UpdateDraft applies the fields present in the body to the current draft.
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var patch service.DraftPatch
	if !web.DecodeValid(w, r, h.logger, h.validate, &patch) {
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.UpdateDraft(r.Context(), patch))
}

func (h *Handler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	h.controller.CancelDraft(r.Context())
	web.RespondJSON(w, h.logger, http.StatusOK, h.controller.View(r.Context()))
}

// CommitDraft adds the current draft as a new product.
func (h *Handler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	created := h.controller.CommitDraft(r.Context())
	h.logger.InfoContext(r.Context(), "Draft committed", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

func (h *Handler) ProductTypes(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, model.ProductTypes())
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
