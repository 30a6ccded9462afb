package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/internal/inventory/usecase/command"
	"github.com/tansu/stockroom/internal/inventory/usecase/query"
	"github.com/tansu/stockroom/pkg/logger"
)

// ItemHandler handles HTTP requests for inventory items
type ItemHandler struct {
	createHandler *command.CreateItemHandler
	updateHandler *command.UpdateItemHandler
	deleteHandler *command.DeleteItemHandler
	adjustHandler *command.AdjustStockHandler

	getHandler  *query.GetItemHandler
	listHandler *query.ListItemsHandler
}

// NewItemHandler creates a new item handler
func NewItemHandler(repo domain.ItemRepository) *ItemHandler {
	return &ItemHandler{
		createHandler: command.NewCreateItemHandler(repo),
		updateHandler: command.NewUpdateItemHandler(repo),
		deleteHandler: command.NewDeleteItemHandler(repo),
		adjustHandler: command.NewAdjustStockHandler(repo),
		getHandler:    query.NewGetItemHandler(repo),
		listHandler:   query.NewListItemsHandler(repo),
	}
}

// CreateItem handles POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		ImageURL      string `json:"image_url"`
		TotalQuantity int    `json:"total_quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.createHandler.Handle(r.Context(), command.CreateItemCommand{
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		TotalQuantity: req.TotalQuantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create item")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Item created successfully",
		Data:    item,
	})
}

// GetItem handles GET /api/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return
	}

	item, err := h.getHandler.Handle(r.Context(), query.GetItemQuery{ItemID: id})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    item,
	})
}

// ListItems handles GET /api/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.listHandler.Handle(r.Context(), query.ListItemsQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list items")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list items",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// UpdateItem handles PUT /api/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return
	}

	var req struct {
		Name              string `json:"name"`
		Description       string `json:"description"`
		ImageURL          string `json:"image_url"`
		TotalQuantity     int    `json:"total_quantity"`
		AvailableQuantity int    `json:"available_quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.updateHandler.Handle(r.Context(), command.UpdateItemCommand{
		ItemID:            id,
		Name:              req.Name,
		Description:       req.Description,
		ImageURL:          req.ImageURL,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update item")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item updated successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteItemCommand{ItemID: id}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete item")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}

// AdjustStock handles PATCH /api/items/{id}/stock
func (h *ItemHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.adjustHandler.Handle(r.Context(), command.AdjustStockCommand{
		ItemID: id,
		Delta:  req.Delta,
	}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to adjust stock")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock adjusted successfully",
	})
}

// RegisterRoutes registers all item routes
func (h *ItemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/items", AuthMiddleware(h.ListItems)).Methods("GET")
	router.HandleFunc("/api/items", AdminMiddleware(h.CreateItem)).Methods("POST")
	router.HandleFunc("/api/items/{id}", AuthMiddleware(h.GetItem)).Methods("GET")
	router.HandleFunc("/api/items/{id}", AdminMiddleware(h.UpdateItem)).Methods("PUT")
	router.HandleFunc("/api/items/{id}", AdminMiddleware(h.DeleteItem)).Methods("DELETE")
	router.HandleFunc("/api/items/{id}/stock", AdminMiddleware(h.AdjustStock)).Methods("PATCH")
}

// RegisterHealthCheck registers health check endpoint
func (h *ItemHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

func pathID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	return uint(id), err
}
