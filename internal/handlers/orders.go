package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/yoobe-br/cubbo-order-support/internal/errors"
	"github.com/yoobe-br/cubbo-order-support/internal/logging"
	"github.com/yoobe-br/cubbo-order-support/internal/models"
	"github.com/yoobe-br/cubbo-order-support/internal/service"
)

// Timeout por requisição. A busca por e-mail pode pagar duas idas à Cubbo
// (pedido + lista do cliente para checar posse).
const requestTimeout = 30 * time.Second

type OrderHandler struct {
	svc *service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc *service.OrderService, log *zap.Logger) *OrderHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderHandler{svc: svc, log: log}
}

// Routes registra as rotas do portal de suporte.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Post("/track", h.TrackOrder)
	r.Get("/orders", h.ListOrders)
	r.Get("/pickup-locations", h.PickupLocations)
	r.Get("/health", h.Health)
}

// TrackOrder resolve uma consulta livre de rastreamento.
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req models.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("JSON inválido no /track", zap.Error(err))
		h.writeError(w, apperrors.ErrBadRequest("invalid JSON body", err))
		return
	}

	ctx = logging.WithLoggingFields(ctx, req.SessionID, "")
	logger := h.log.With(logging.GetLoggingFieldsFromContext(ctx)...)

	resp, err := h.svc.TrackOrder(ctx, req)
	if err != nil {
		logger.Error("erro ao rastrear pedido", zap.Error(err))
		h.writeError(w, err)
		return
	}

	logger.Info("consulta de rastreamento atendida",
		zap.String("status", resp.Status),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

// ListOrders lista os pedidos de um cliente por e-mail.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	phone := r.URL.Query().Get("phone")

	var (
		orders []models.Order
		err    error
	)
	switch {
	case email != "":
		orders, err = h.svc.FindOrdersByCustomer(ctx, email)
	case phone != "":
		orders, err = h.svc.FindOrdersByPhone(ctx, phone)
	default:
		h.writeError(w, apperrors.ErrBadRequest("email or phone query param is required", nil))
		return
	}
	if err != nil {
		h.log.Error("erro ao listar pedidos", zap.Error(err))
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"count":  len(orders),
	})
}

// PickupLocations consulta pontos de retirada por CEP.
func (h *OrderHandler) PickupLocations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	postalCode := r.URL.Query().Get("postal_code")
	if postalCode == "" {
		h.writeError(w, apperrors.ErrBadRequest("postal_code query param is required", nil))
		return
	}

	locations, err := h.svc.GetPickupLocations(ctx, postalCode)
	if err != nil {
		h.log.Error("erro ao buscar pontos de retirada", zap.Error(err))
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"pickup_locations": locations,
		"count":            len(locations),
	})
}

// Health responde ao probe de liveness.
func (h *OrderHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *OrderHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("erro ao serializar resposta", zap.Error(err))
	}
}

func (h *OrderHandler) writeError(w http.ResponseWriter, err error) {
	status := apperrors.GetStatusCode(err)

	if appErr, ok := err.(*apperrors.AppError); ok {
		h.writeJSON(w, status, appErr)
		return
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
