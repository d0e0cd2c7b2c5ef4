package pos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restaurant-pos/internal/engine"
	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// Handler exposes the engine's transitions and queries over HTTP
type Handler struct {
	engine  *engine.Engine
	metrics prometheus.Gatherer
	logger  *logger.Logger
}

// NewHandler creates a new POS handler
func NewHandler(eng *engine.Engine, metrics prometheus.Gatherer, log *logger.Logger) *Handler {
	return &Handler{
		engine:  eng,
		metrics: metrics,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/orders", h.withLogging(h.PlaceOrder))
	mux.HandleFunc("/orders/receive", h.withLogging(h.ReceiveOrder))
	mux.HandleFunc("/orders/cook", h.withLogging(h.CookOrder))
	mux.HandleFunc("/orders/deliver", h.withLogging(h.DeliverOrder))
	mux.HandleFunc("/orders/cancel", h.withLogging(h.CancelOrder))
	mux.HandleFunc("/orders/return", h.withLogging(h.ReturnOrder))
	mux.HandleFunc("/shipments", h.withLogging(h.Ship))
	mux.HandleFunc("/kitchen/queue", h.withLogging(h.KitchenQueue))
	mux.HandleFunc("/menu", h.withLogging(h.Menu))
	mux.HandleFunc("/tables/bill", h.withLogging(h.Bill))
	mux.HandleFunc("/tables/clear", h.withLogging(h.ClearTable))
	mux.HandleFunc("/inventory", h.withLogging(h.Inventory))
	mux.HandleFunc("/stats", h.withLogging(h.Stats))
	mux.HandleFunc("/payments", h.withLogging(h.Payments))
	mux.HandleFunc("/health", h.withLogging(h.HealthCheck))
	mux.Handle("/metrics", promhttp.HandlerFor(h.metrics, promhttp.HandlerOpts{}))

	return mux
}

// PlaceOrder handles POST /orders
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req engine.PlaceRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}
	if err := ValidatePlace(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	order, err := h.engine.Place(req)
	if err != nil {
		h.rejectTransition(w, "order_rejected", err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order_number": order.Number,
		"status":       string(order.Status),
		"price":        order.Price,
	})
}

// ReceiveOrder handles POST /orders/receive
func (h *Handler) ReceiveOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, true, false, func(req *OrderActionRequest) error {
		return h.engine.Receive(req.OrderNumber, req.Cook)
	})
}

// CookOrder handles POST /orders/cook
func (h *Handler) CookOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, true, false, func(req *OrderActionRequest) error {
		return h.engine.Cook(req.OrderNumber, req.Cook)
	})
}

// DeliverOrder handles POST /orders/deliver
func (h *Handler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, false, true, func(req *OrderActionRequest) error {
		return h.engine.Deliver(req.OrderNumber, req.Server)
	})
}

// CancelOrder handles POST /orders/cancel
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, false, false, func(req *OrderActionRequest) error {
		reason := models.ReasonCustomerCancelled
		if req.Reason == string(models.ReasonCustomerReturned) {
			reason = models.ReasonCustomerReturned
		}
		return h.engine.Cancel(req.OrderNumber, reason)
	})
}

// ReturnOrder handles POST /orders/return
func (h *Handler) ReturnOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req OrderActionRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}
	if err := req.Validate(false, false); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	replacement, err := h.engine.Return(req.OrderNumber)
	if err != nil {
		h.rejectTransition(w, "return_rejected", err, requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"original_order":    req.OrderNumber,
		"replacement_order": replacement.Number,
		"status":            string(replacement.Status),
	})
}

// Ship handles POST /shipments
func (h *Handler) Ship(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req ShipmentRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}
	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	if err := h.engine.Ship(req.Ingredient, req.Amount); err != nil {
		h.rejectTransition(w, "shipment_rejected", err, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "received"})
}

// KitchenQueue handles GET /kitchen/queue
func (h *Handler) KitchenQueue(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	type queued struct {
		OrderNumber int    `json:"order_number"`
		Dish        string `json:"dish"`
		Table       int    `json:"table"`
		Seat        int    `json:"seat"`
	}
	var out []queued
	for _, o := range h.engine.KitchenQueue() {
		out = append(out, queued{OrderNumber: o.Number, Dish: o.Item.Name, Table: o.TableNumber, Seat: o.Seat})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"orders": out})
}

// Menu handles GET /menu?tag=T
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	menu := h.engine.Menu()
	if tag := r.URL.Query().Get("tag"); tag != "" {
		menu = menu.WithTag(tag)
	}

	type dish struct {
		Name  string   `json:"name"`
		Price float64  `json:"price"`
		Tags  []string `json:"tags,omitempty"`
	}
	out := make([]dish, 0, len(menu))
	for _, item := range menu {
		out = append(out, dish{Name: item.Name, Price: item.Price, Tags: item.Tags})
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"dishes": out})
}

// Bill handles GET /tables/bill?table=N&seat=M
func (h *Handler) Bill(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	table, seat, err := parseTableSeat(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	var bill engine.Bill
	if seat == 0 {
		bill, err = h.engine.TableBill(table)
	} else {
		bill, err = h.engine.SeatBill(table, seat)
	}
	if err != nil {
		h.rejectTransition(w, "bill_rejected", err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, bill)
}

// ClearTable handles POST /tables/clear
func (h *Handler) ClearTable(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req ClearTableRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}
	if req.Table < 1 {
		h.writeErrorResponse(w, http.StatusBadRequest, "table is required", requestID)
		return
	}

	rec, err := h.engine.ClearTable(req.Table)
	if err != nil {
		h.rejectTransition(w, "clear_rejected", err, requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// Inventory handles GET /inventory
func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"ingredients": h.engine.Inventory()})
}

// Stats handles GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"popular_dishes":   h.engine.Statistics().PopularDishes(),
		"ingredient_usage": h.engine.Statistics().IngredientUsage(),
	})
}

// Payments handles GET /payments?date=YYYY-MM-DD
func (h *Handler) Payments(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(models.PaymentDateLayout)
	}
	if _, err := time.Parse(models.PaymentDateLayout, date); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD", requestID)
		return
	}

	records, total := h.engine.Payments(date)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":     date,
		"payments": records,
		"total":    total,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pos-server",
	})
}

// orderAction is the shared decode/validate/execute path for order commands
func (h *Handler) orderAction(w http.ResponseWriter, r *http.Request, needCook, needServer bool, do func(*OrderActionRequest) error) {
	requestID := logger.GenerateRequestID()

	var req OrderActionRequest
	if !h.decodeJSON(w, r, &req, requestID) {
		return
	}
	if err := req.Validate(needCook, needServer); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	if err := do(&req); err != nil {
		h.rejectTransition(w, "transition_rejected", err, requestID)
		return
	}

	order, err := h.engine.Order(req.OrderNumber)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"order_number": order.Number,
		"status":       string(order.Status),
	})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, requestID string) bool {
	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return false
	}
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return false
	}
	return true
}

// rejectTransition maps engine rejections to HTTP statuses
func (h *Handler) rejectTransition(w http.ResponseWriter, action string, err error, requestID string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUnknownDish),
		errors.Is(err, models.ErrUnknownIngredient),
		errors.Is(err, models.ErrUnknownOrder),
		errors.Is(err, models.ErrUnknownTable):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrSeatOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrStaleCook),
		errors.Is(err, models.ErrCookBusy),
		errors.Is(err, models.ErrWrongServer),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrTableActive):
		status = http.StatusConflict
	}

	h.logger.Error(action, "Transition rejected", requestID, err, nil)
	h.writeErrorResponse(w, status, err.Error(), requestID)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}
		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func parseTableSeat(r *http.Request) (table, seat int, err error) {
	q := r.URL.Query()
	if _, parseErr := fmt.Sscanf(q.Get("table"), "%d", &table); parseErr != nil || table < 1 {
		return 0, 0, fmt.Errorf("table query parameter is required")
	}
	if s := q.Get("seat"); s != "" {
		if _, parseErr := fmt.Sscanf(s, "%d", &seat); parseErr != nil || seat < 1 {
			return 0, 0, fmt.Errorf("seat must be a positive seat number")
		}
	}
	return table, seat, nil
}
