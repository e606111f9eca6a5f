package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/stockroom/internal/middleware"
	"github.com/vyrodovalexey/stockroom/internal/model"
	"github.com/vyrodovalexey/stockroom/internal/store"
)

const formMediaType = "application/x-www-form-urlencoded"

// Client-facing messages.
const (
	msgItemNotFound       = "Item not found"
	msgMissingFields      = "Missing required fields"
	msgSupplierRequired   = "Supplier parameter required"
	msgInvalidBody        = "invalid request body"
	msgListFailed         = "Server error retrieving inventory"
	msgCategoriesFailed   = "Server error retrieving categories"
	msgFilterFailed       = "Server error filtering items"
	msgInternalError      = "Internal Server Error"
	msgRouteNotFound      = "Not Found"
	msgMethodNotSupported = "Method Not Allowed"
)

// RESTHandler handles REST API requests for inventory items.
type RESTHandler struct {
	store    store.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewRESTHandler creates a new RESTHandler instance.
// A nil notifier disables creation broadcasts.
func NewRESTHandler(s store.Store, n Notifier, logger *zap.Logger) *RESTHandler {
	h := &RESTHandler{
		store:    s,
		notifier: n,
		logger:   logger,
	}

	if items, err := s.List(context.Background()); err == nil {
		inventoryItems.Set(float64(len(items)))
	}

	return h
}

// RegisterRoutes registers the REST API routes with the router.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.ReadyCheck).Methods(http.MethodGet)
	router.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/all", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/item", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/item/{id}", h.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/item/{id}", h.DeleteItem).Methods(http.MethodDelete)
	router.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	router.HandleFunc("/byCategory", h.ItemsByCategory).Methods(http.MethodGet)
	router.HandleFunc("/supplier-items", h.ItemsBySupplier).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(h.RouteNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

// ReadyCheck handles GET /ready requests.
func (h *RESTHandler) ReadyCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready"})
}

// ListItems handles GET /items and GET /all requests.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err, msgListFailed)
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /item/{id} requests.
// The id token is converted as a whole, so "11", "11.0" and "0xB" find the same item.
func (h *RESTHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := model.LooseID(mux.Vars(r)["id"])
	if !ok {
		h.handleStoreError(w, r, store.ErrNotFound, msgInternalError)
		return
	}

	item, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err, msgInternalError)
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /item requests.
// JSON and form-encoded bodies are accepted. A JSON body of the wrong shape
// is reported as missing fields rather than as unreadable.
func (h *RESTHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	input, err := decodeItemInput(r)
	var shapeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &shapeErr) {
		h.writeError(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	if err != nil || input.Validate() != nil {
		h.logger.Warn("missing or invalid fields",
			zap.String("name", input.Name),
			zap.String("status", input.Status),
			zap.ByteString("quantity", input.Quantity),
			zap.String("category", input.Category),
			zap.String("supplier", input.Supplier),
			zap.ByteString("weight", input.Weight),
			zap.Error(err),
		)
	}
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, msgMissingFields, err)
		return
	}

	item, err := h.store.Create(r.Context(), &input)
	if err != nil {
		h.handleStoreError(w, r, err, msgInternalError)
		return
	}

	itemsCreatedTotal.Inc()
	inventoryItems.Inc()

	if h.notifier != nil {
		h.notifier.Broadcast(item)
	}

	h.writeJSON(w, http.StatusCreated, item)
}

// decodeItemInput reads a create request body. Form values are kept as JSON
// strings so quantity and weight go through the same lenient parsing as
// string values sent in JSON; a form key that is present counts as present.
func decodeItemInput(r *http.Request) (model.ItemInput, error) {
	var input model.ItemInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == formMediaType {
		if err := r.ParseForm(); err != nil {
			return input, fmt.Errorf("parsing form body: %w", err)
		}
		form := r.PostForm
		input.Name = form.Get("name")
		input.Status = form.Get("status")
		input.Category = form.Get("category")
		input.Supplier = form.Get("supplier")
		input.Quantity = formValue(form, "quantity")
		input.Weight = formValue(form, "weight")
		return input, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		return input, fmt.Errorf("decoding json body: %w", err)
	}
	return input, nil
}

func formValue(form url.Values, key string) json.RawMessage {
	if _, ok := form[key]; !ok {
		return nil
	}
	raw, _ := json.Marshal(form.Get(key))
	return raw
}

// DeleteItem handles DELETE /item/{id} requests.
// Only the leading integer of the id token is used, so "11abc" removes item 11.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := model.ParseInt(mux.Vars(r)["id"])
	if !ok {
		h.handleStoreError(w, r, store.ErrNotFound, msgInternalError)
		return
	}

	item, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, r, err, msgInternalError)
		return
	}

	itemsDeletedTotal.Inc()
	inventoryItems.Dec()

	h.writeJSON(w, http.StatusOK, item)
}

// ListCategories handles GET /categories requests.
func (h *RESTHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.handleStoreError(w, r, err, msgCategoriesFailed)
		return
	}

	h.writeJSON(w, http.StatusOK, categories)
}

// ItemsByCategory handles GET /byCategory requests.
func (h *RESTHandler) ItemsByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.handleStoreError(w, r, err, msgFilterFailed)
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

// ItemsBySupplier handles GET /supplier-items requests.
func (h *RESTHandler) ItemsBySupplier(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.BySupplier(r.Context(), r.URL.Query().Get("supplier"))
	if err != nil {
		h.handleStoreError(w, r, err, msgInternalError)
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

// RouteNotFound answers requests that match no route.
func (h *RESTHandler) RouteNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, msgRouteNotFound, nil)
}

// MethodNotAllowed answers requests whose path exists under another method.
func (h *RESTHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusMethodNotAllowed, msgMethodNotSupported, nil)
}

// handleStoreError maps store conditions to HTTP responses.
// Unclassified errors become a 500 carrying fallback as the message.
func (h *RESTHandler) handleStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, msgItemNotFound, nil)
	case errors.Is(err, model.ErrMissingFields), errors.Is(err, store.ErrNilItem):
		h.writeError(w, r, http.StatusBadRequest, msgMissingFields, nil)
	case errors.Is(err, store.ErrSupplierRequired):
		h.writeError(w, r, http.StatusBadRequest, msgSupplierRequired, nil)
	default:
		h.writeError(w, r, http.StatusInternalServerError, fallback, err)
	}
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError logs the condition and writes it as {"error": message}.
func (h *RESTHandler) writeError(w http.ResponseWriter, r *http.Request, status int, message string, cause error) {
	h.logger.Error("request failed",
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("url", r.URL.RequestURI()),
		zap.String("message", message),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(cause),
	)

	h.writeJSON(w, status, model.ErrorResponse{Error: message})
}
