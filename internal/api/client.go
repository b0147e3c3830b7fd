// Package api implementa o cliente HTTP para a API de fulfillment da Cubbo.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/yoobe-br/cubbo-order-support/internal/config"
	apperrors "github.com/yoobe-br/cubbo-order-support/internal/errors"
	"github.com/yoobe-br/cubbo-order-support/internal/models"
	"github.com/yoobe-br/cubbo-order-support/internal/retry"
)

const (
	defaultPerPage = 100
	retryAttempts  = 3
	retryBaseDelay = 500 * time.Millisecond
	// Margem de segurança antes de expirar o token em cache
	tokenExpiryMargin = 60 * time.Second
)

// OrderFilter define os filtros aceitos pelo endpoint de pedidos.
// StoreID é sempre exigido; exatamente um dos demais campos deve estar presente.
type OrderFilter struct {
	StoreID       string
	OrderNumber   string
	ShippingEmail string
	CustomerPhone string
}

// CubboClient encapsula autenticação client-credentials, circuit breaker e
// retries contra a API da Cubbo.
type CubboClient struct {
	http         *http.Client
	base         string
	clientID     string
	clientSecret string
	log          *zap.Logger
	breaker      *gobreaker.CircuitBreaker

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewCubboClient cria um cliente a partir da configuração carregada.
func NewCubboClient(cfg config.CubboConfig, log *zap.Logger) *CubboClient {
	if log == nil {
		log = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cubbo-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker mudou de estado",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &CubboClient{
		http:         &http.Client{Timeout: cfg.Timeout},
		base:         strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		log:          log,
		breaker:      breaker,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	ExpiresIn   int    `json:"expires_in"`
}

// authenticate obtém um novo bearer token via client credentials.
// A Cubbo devolve o token como access_token ou token dependendo da versão.
func (c *CubboClient) authenticate(ctx context.Context) (string, time.Time, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, apperrors.ErrInternalServer("error building auth request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", time.Time{}, apperrors.ErrServiceUnavailable("cubbo auth unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", time.Time{}, apperrors.ErrUnauthorized(
			fmt.Sprintf("cubbo auth failed: status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, apperrors.ErrExternalAPI(resp.StatusCode, "invalid JSON from cubbo auth", err)
	}

	token := tr.AccessToken
	if token == "" {
		token = tr.Token
	}
	if token == "" {
		return "", time.Time{}, apperrors.ErrUnauthorized("cubbo auth returned empty token", nil)
	}

	expiresIn := tr.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	exp := time.Now().Add(time.Duration(expiresIn) * time.Second)

	return token, exp, nil
}

// bearerToken devolve o token em cache ou autentica de novo quando expirado.
func (c *CubboClient) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp.Add(-tokenExpiryMargin)) {
		return c.token, nil
	}

	token, exp, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	c.tokenExp = exp
	c.log.Debug("token da cubbo renovado", zap.Time("expires_at", exp))
	return token, nil
}

// invalidateToken descarta o token em cache após um 401.
func (c *CubboClient) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExp = time.Time{}
	c.mu.Unlock()
}

// doGet executa um GET autenticado através do circuit breaker e com retries,
// devolvendo o body bruto.
func (c *CubboClient) doGet(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var body []byte

	err := retry.WithRetry(ctx, retryAttempts, retryBaseDelay, func() error {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.getOnce(ctx, path, query)
		})
		if err != nil {
			if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
				return apperrors.ErrServiceUnavailable("cubbo circuit breaker open", err)
			}
			return err
		}
		body = result.([]byte)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *CubboClient) getOnce(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, apperrors.ErrInternalServer("error building request", err)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrServiceUnavailable("cubbo unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrExternalAPI(resp.StatusCode, "error reading cubbo response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Token pode ter sido revogado antes do expires_in
		c.invalidateToken()
		return nil, apperrors.ErrExternalAPI(resp.StatusCode, "cubbo rejected token", nil).
			WithRetryable(true)
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.ErrNotFound(fmt.Sprintf("cubbo: %s not found", path), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apperrors.ErrRateLimited("cubbo rate limit", nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.ErrExternalAPI(resp.StatusCode,
			fmt.Sprintf("cubbo error: status %d", resp.StatusCode), nil)
	}

	return body, nil
}

// FetchOrders busca pedidos brutos na Cubbo segundo o filtro.
func (c *CubboClient) FetchOrders(ctx context.Context, filter OrderFilter) ([]models.RawOrder, error) {
	if filter.StoreID == "" {
		return nil, apperrors.ErrValidation("store_id is required", nil)
	}

	query := url.Values{}
	query.Set("store_id", filter.StoreID)
	query.Set("per_page", fmt.Sprintf("%d", defaultPerPage))
	query.Set("page", "1")
	query.Set("sort", "desc")
	query.Set("sort_by", "created_at")

	switch {
	case filter.OrderNumber != "":
		query.Set("order_number", filter.OrderNumber)
	case filter.ShippingEmail != "":
		query.Set("shipping_email", filter.ShippingEmail)
	case filter.CustomerPhone != "":
		query.Set("customer_phone", filter.CustomerPhone)
	default:
		return nil, apperrors.ErrValidation("order_number, shipping_email or customer_phone is required", nil)
	}

	body, err := c.doGet(ctx, "/orders", query)
	if err != nil {
		return nil, err
	}

	orders, err := unwrapOrders(body)
	if err != nil {
		return nil, err
	}

	c.log.Debug("pedidos recebidos da cubbo",
		zap.String("store_id", filter.StoreID),
		zap.Int("count", len(orders)),
	)
	return orders, nil
}

// FetchPickupLocations consulta pontos de retirada por CEP.
func (c *CubboClient) FetchPickupLocations(ctx context.Context, postalCode string) ([]map[string]any, error) {
	if postalCode == "" {
		return nil, apperrors.ErrValidation("postal_code is required", nil)
	}

	query := url.Values{}
	query.Set("postal_code", postalCode)

	body, err := c.doGet(ctx, "/carrier-services/pickup-locations", query)
	if err != nil {
		return nil, err
	}

	return unwrapRates(body)
}

// unwrapOrders extrai a lista de pedidos de qualquer um dos envelopes que a
// Cubbo usa: orders | order | data | results | array na raiz | objeto na raiz.
func unwrapOrders(body []byte) ([]models.RawOrder, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, apperrors.ErrExternalAPI(http.StatusOK, "invalid JSON from cubbo", err)
	}

	switch v := root.(type) {
	case []any:
		return rawOrdersFromSlice(v), nil
	case map[string]any:
		for _, key := range []string{"orders", "data", "results"} {
			if list, ok := v[key].([]any); ok {
				return rawOrdersFromSlice(list), nil
			}
		}
		if single, ok := v["order"].(map[string]any); ok {
			return []models.RawOrder{models.RawOrder(single)}, nil
		}
		// Objeto na raiz: tratar como um pedido único
		return []models.RawOrder{models.RawOrder(v)}, nil
	default:
		return nil, apperrors.ErrExternalAPI(http.StatusOK,
			"unexpected cubbo response shape", nil)
	}
}

func rawOrdersFromSlice(list []any) []models.RawOrder {
	orders := make([]models.RawOrder, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			orders = append(orders, models.RawOrder(m))
		}
	}
	return orders
}

// unwrapRates extrai a lista de pontos de retirada do envelope rates.
func unwrapRates(body []byte) ([]map[string]any, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, apperrors.ErrExternalAPI(http.StatusOK, "invalid JSON from cubbo", err)
	}

	var list []any
	switch v := root.(type) {
	case []any:
		list = v
	case map[string]any:
		if rates, ok := v["rates"].([]any); ok {
			list = rates
		} else if data, ok := v["data"].([]any); ok {
			list = data
		}
	}

	rates := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			rates = append(rates, m)
		}
	}
	return rates, nil
}
