package service

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/yoobe-br/cubbo-order-support/internal/api"
	apperrors "github.com/yoobe-br/cubbo-order-support/internal/errors"
	"github.com/yoobe-br/cubbo-order-support/internal/format"
	"github.com/yoobe-br/cubbo-order-support/internal/logging"
	"github.com/yoobe-br/cubbo-order-support/internal/models"
	"github.com/yoobe-br/cubbo-order-support/internal/normalize"
	"github.com/yoobe-br/cubbo-order-support/internal/ordernum"
	"github.com/yoobe-br/cubbo-order-support/internal/validator"
)

// Status das respostas de rastreamento.
const (
	StatusFound        = "found"
	StatusNotFound     = "not_found"
	StatusInvalidQuery = "invalid_query"
)

// CubboAPI é o subconjunto do cliente Cubbo que o serviço consome.
type CubboAPI interface {
	FetchOrders(ctx context.Context, filter api.OrderFilter) ([]models.RawOrder, error)
	FetchPickupLocations(ctx context.Context, postalCode string) ([]map[string]any, error)
}

type OrderService struct {
	client         CubboAPI
	normalizer     *normalize.Normalizer
	validate       *validator.QueryValidator
	storeID        string
	log            *zap.Logger
	maxConcurrency int // Máximo de normalizações concorrentes
}

func NewOrderService(client CubboAPI, normalizer *normalize.Normalizer, storeID string, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		client:         client,
		normalizer:     normalizer,
		validate:       validator.NewQueryValidator(),
		storeID:        storeID,
		log:            log,
		maxConcurrency: 5,
	}
}

// ---------------------------------------------------------
// MÉTODO PRINCIPAL
// ---------------------------------------------------------

// TrackOrder resolve uma consulta livre (número de pedido, e-mail ou telefone)
// para um ou mais pedidos normalizados. Quando a consulta é um número de pedido
// e o e-mail do solicitante é conhecido, o pedido só é devolvido se pertencer
// a esse cliente.
func (s *OrderService) TrackOrder(ctx context.Context, req models.TrackRequest) (*models.TrackResponse, error) {
	logger := s.log.With(logging.GetLoggingFieldsFromContext(ctx)...)

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return &models.TrackResponse{
			Status:  StatusInvalidQuery,
			Details: "informe um número de pedido, e-mail ou telefone",
		}, nil
	}

	switch {
	case validator.IsEmail(query):
		orders, err := s.FindOrdersByCustomer(ctx, query)
		if err != nil {
			return nil, err
		}
		return listResponse(orders), nil

	case looksLikePhone(query) && validator.IsValidBRPhone(query):
		orders, err := s.FindOrdersByPhone(ctx, query)
		if err != nil {
			return nil, err
		}
		return listResponse(orders), nil

	default:
		orderNumber := validator.CleanOrderNumber(query)
		if err := s.validate.ValidateTrackQuery(orderNumber); err != nil {
			// Mensagem livre ("meu pedido R123456 não chegou"): tentar
			// extrair um código antes de desistir
			if extracted := ordernum.Extract(query); len(extracted) > 0 {
				orderNumber = extracted[0]
			} else {
				logger.Info("consulta de rastreamento inválida", zap.String("query", req.Query))
				return &models.TrackResponse{
					Status:  StatusInvalidQuery,
					Details: err.Error(),
				}, nil
			}
		}

		order, err := s.GetOrderDetails(ctx, orderNumber, req.CustomerEmail)
		if err != nil {
			if apperrors.GetStatusCode(err) == http.StatusNotFound {
				return &models.TrackResponse{Status: StatusNotFound}, nil
			}
			return nil, err
		}
		if order == nil {
			return &models.TrackResponse{Status: StatusNotFound}, nil
		}
		return &models.TrackResponse{
			Status:  StatusFound,
			Order:   order,
			Details: format.OrderDetails(order),
		}, nil
	}
}

// listResponse monta a resposta para buscas que devolvem vários pedidos,
// com um resumo por linha pronto para a conversa.
func listResponse(orders []models.Order) *models.TrackResponse {
	if len(orders) == 0 {
		return &models.TrackResponse{Status: StatusNotFound}
	}
	summaries := make([]string, len(orders))
	for i := range orders {
		summaries[i] = format.OrderSummary(&orders[i])
	}
	return &models.TrackResponse{
		Status:  StatusFound,
		Orders:  orders,
		Details: strings.Join(summaries, "\n"),
	}
}

// GetOrderDetails busca um pedido por número. Quando customerEmail é informado
// e não bate com os e-mails do pedido, a posse é verificada contra a lista de
// pedidos do cliente antes de devolver qualquer coisa.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderNumber, customerEmail string) (*models.Order, error) {
	logger := s.log.With(logging.GetLoggingFieldsFromContext(ctx)...)

	orders, err := s.findOrders(ctx, api.OrderFilter{
		StoreID:     s.storeID,
		OrderNumber: orderNumber,
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	order := &orders[0]

	if customerEmail != "" && !s.ownsOrder(ctx, order, customerEmail) {
		// Não revelar a existência de pedidos de terceiros
		logger.Warn("pedido não pertence ao solicitante",
			zap.String("order_number", orderNumber),
		)
		return nil, nil
	}

	return order, nil
}

// ownsOrder verifica se o pedido pertence ao cliente identificado pelo e-mail.
func (s *OrderService) ownsOrder(ctx context.Context, order *models.Order, customerEmail string) bool {
	email := strings.ToLower(strings.TrimSpace(customerEmail))
	if strings.ToLower(order.CustomerEmail) == email || strings.ToLower(order.ShippingEmail) == email {
		return true
	}

	// Pedidos antigos às vezes vêm sem e-mail; conferir pela lista do cliente
	owned, err := s.FindOrdersByCustomer(ctx, customerEmail)
	if err != nil {
		s.log.Warn("não foi possível verificar a posse do pedido", zap.Error(err))
		return false
	}
	for i := range owned {
		if owned[i].OrderNumber == order.OrderNumber {
			return true
		}
	}
	return false
}

// FindOrdersByCustomer busca todos os pedidos associados a um e-mail de entrega,
// normalizados e ordenados do mais recente para o mais antigo.
func (s *OrderService) FindOrdersByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	if err := s.validate.ValidateCustomerEmail(email); err != nil {
		return nil, apperrors.ErrValidation(err.Error(), err)
	}

	return s.findOrders(ctx, api.OrderFilter{
		StoreID:       s.storeID,
		ShippingEmail: strings.TrimSpace(email),
	})
}

// FindOrdersByPhone busca pedidos pelo telefone do cliente.
func (s *OrderService) FindOrdersByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	if !validator.IsValidBRPhone(phone) {
		return nil, apperrors.ErrValidation("phone is not a valid BR phone number", nil)
	}

	return s.findOrders(ctx, api.OrderFilter{
		StoreID:       s.storeID,
		CustomerPhone: validator.SanitizePhone(phone),
	})
}

// findOrders busca pedidos brutos e normaliza o lote de forma concorrente,
// preservando uma ordenação por created_at decrescente no resultado.
func (s *OrderService) findOrders(ctx context.Context, filter api.OrderFilter) ([]models.Order, error) {
	raws, err := s.client.FetchOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return []models.Order{}, nil
	}

	orders := make([]models.Order, len(raws))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.maxConcurrency)

	for i := range raws {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// Adquirir semáforo (limita concorrência)
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			orders[i] = s.normalizer.Normalize(raws[i])
		}(i)
	}
	wg.Wait()

	sort.SliceStable(orders, func(a, b int) bool {
		ta, errA := time.Parse(time.RFC3339Nano, orders[a].CreatedAt)
		tb, errB := time.Parse(time.RFC3339Nano, orders[b].CreatedAt)
		if errA != nil || errB != nil {
			return orders[a].CreatedAt > orders[b].CreatedAt
		}
		return ta.After(tb)
	})

	return orders, nil
}

// GetPickupLocations consulta pontos de retirada por CEP e projeta os campos
// relevantes de cada rate.
func (s *OrderService) GetPickupLocations(ctx context.Context, postalCode string) ([]models.PickupLocation, error) {
	rates, err := s.client.FetchPickupLocations(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	locations := make([]models.PickupLocation, 0, len(rates))
	for _, rate := range rates {
		loc := models.PickupLocation{
			ServiceName: stringField(rate, "service_name", "name"),
			ServiceCode: stringField(rate, "service_code", "code"),
			Source:      stringField(rate, "source", "carrier", "carrier_name"),
			Description: stringField(rate, "description", "address"),
			Distance:    stringField(rate, "distance"),
		}
		if loc.ServiceName == "" && loc.Description == "" {
			continue
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// looksLikePhone descarta consultas com letras: um código "R1234567890"
// tem dez dígitos mas não é telefone.
func looksLikePhone(query string) bool {
	for _, r := range query {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
