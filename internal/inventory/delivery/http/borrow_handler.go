package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tansu/stockroom/internal/inventory/domain"
	"github.com/tansu/stockroom/internal/inventory/usecase/command"
	"github.com/tansu/stockroom/internal/inventory/usecase/query"
	"github.com/tansu/stockroom/kafka"
	"github.com/tansu/stockroom/pkg/logger"
)

// dateLayout is the wire format for return dates
const dateLayout = "2006-01-02"

// BorrowHandler handles HTTP requests for the borrow lifecycle
type BorrowHandler struct {
	createHandler     *command.CreateRequestHandler
	transitionHandler *command.TransitionRequestHandler

	getHandler  *query.GetRequestHandler
	listHandler *query.ListRequestsHandler

	requestCounter   *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	transitionsTotal *prometheus.CounterVec
}

// NewBorrowHandler creates a new borrow handler
func NewBorrowHandler(requests domain.BorrowRequestRepository, items domain.ItemRepository, publisher *kafka.Publisher) *BorrowHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borrow_service_requests_total",
			Help: "Total number of requests to borrow endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "borrow_service_request_duration_seconds",
			Help:    "Duration of borrow endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	transitionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borrow_service_transitions_total",
			Help: "Total number of borrow request status transitions",
		},
		[]string{"target_status", "result"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(transitionsTotal)

	return &BorrowHandler{
		createHandler:     command.NewCreateRequestHandler(requests, items, publisher),
		transitionHandler: command.NewTransitionRequestHandler(requests, publisher),
		getHandler:        query.NewGetRequestHandler(requests),
		listHandler:       query.NewListRequestsHandler(requests),
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		transitionsTotal:  transitionsTotal,
	}
}

// CreateRequest handles POST /api/requests
func (h *BorrowHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		ItemID             uint    `json:"item_id"`
		Quantity           int     `json:"quantity"`
		ExpectedReturnDate *string `json:"expected_return_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	expected, err := parseDate(req.ExpectedReturnDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid expected_return_date, want YYYY-MM-DD",
		})
		return
	}

	request, err := h.createHandler.Handle(r.Context(), command.CreateRequestCommand{
		UserID:             actor.ID,
		ItemID:             req.ItemID,
		Quantity:           req.Quantity,
		ExpectedReturnDate: expected,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create borrow request")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Borrow request created successfully",
		Data:    request,
	})
}

// GetRequest handles GET /api/requests/{id}
func (h *BorrowHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request ID",
		})
		return
	}

	request, err := h.getHandler.Handle(r.Context(), query.GetRequestQuery{
		RequestID: id,
		Actor:     actor,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    request,
	})
}

// ListRequests handles GET /api/requests
func (h *BorrowHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	requests, err := h.listHandler.Handle(r.Context(), query.ListRequestsQuery{
		Actor:  actor,
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list borrow requests")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    requests,
	})
}

// TransitionRequest handles PATCH /api/requests/{id}/status
func (h *BorrowHandler) TransitionRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request ID",
		})
		return
	}

	var req struct {
		Status           string  `json:"status"`
		AdminRemarks     *string `json:"admin_remarks"`
		ActualReturnDate *string `json:"actual_return_date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	actualReturn, err := parseDate(req.ActualReturnDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid actual_return_date, want YYYY-MM-DD",
		})
		return
	}

	request, err := h.transitionHandler.Handle(r.Context(), command.TransitionRequestCommand{
		RequestID:        id,
		TargetStatus:     req.Status,
		Actor:            actor,
		AdminRemarks:     req.AdminRemarks,
		ActualReturnDate: actualReturn,
	})
	if err != nil {
		h.transitionsTotal.WithLabelValues(req.Status, "error").Inc()
		logger.Error(r.Context()).
			Err(err).
			Uint("request_id", id).
			Str("target_status", req.Status).
			Msg("Failed to transition borrow request")
		respondDomainError(w, err)
		return
	}

	h.transitionsTotal.WithLabelValues(req.Status, "ok").Inc()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Borrow request status updated successfully",
		Data:    request,
	})
}

// RegisterRoutes registers all borrow routes
func (h *BorrowHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/requests", h.metricsMiddleware("/api/requests", AuthMiddleware(h.ListRequests))).Methods("GET")
	router.HandleFunc("/api/requests", h.metricsMiddleware("/api/requests", AuthMiddleware(h.CreateRequest))).Methods("POST")
	router.HandleFunc("/api/requests/{id}", h.metricsMiddleware("/api/requests/{id}", AuthMiddleware(h.GetRequest))).Methods("GET")
	router.HandleFunc("/api/requests/{id}/status", h.metricsMiddleware("/api/requests/{id}/status", AuthMiddleware(h.TransitionRequest))).Methods("PATCH")
}

// metricsMiddleware records request count and latency per endpoint
func (h *BorrowHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(ww.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// statusResponseWriter wraps http.ResponseWriter to capture status code
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
