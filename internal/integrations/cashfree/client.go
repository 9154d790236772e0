package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/m04kA/AiroFix-BookingService/pkg/metrics"
)

const (
	operationCreateLink    = "create_link"
	operationGetLinkOrders = "get_link_orders"

	// maxResponseSize ответы Payment Links API небольшие
	maxResponseSize = 1 << 20

	defaultInitialInterval = 200 * time.Millisecond
)

// Config параметры подключения к Cashfree Payment Links API
type Config struct {
	BaseURL         string // https://sandbox.cashfree.com/pg | https://api.cashfree.com/pg
	AppID           string
	SecretKey       string
	APIVersion      string
	Timeout         time.Duration // на одну попытку
	MaxRetries      int
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration // на все попытки
}

// Client клиент для работы с Cashfree Payment Links
type Client struct {
	cfg        Config
	httpClient *http.Client
	metrics    *metrics.Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента Cashfree
// m может быть nil, если метрики отключены
func NewClient(cfg Config, m *metrics.Metrics, log Logger) *Client {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics: m,
		log:     log,
	}
}

// Configured сообщает, заданы ли ключи доступа
func (c *Client) Configured() bool {
	return c.cfg.AppID != "" && c.cfg.SecretKey != ""
}

// CreateLink создает платежную ссылку
// Ответ без адреса ссылки считается отказом шлюза (APIError с исходным телом)
func (c *Client) CreateLink(ctx context.Context, req *CreateLinkRequest) (*Link, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLink - marshal request: %v", ErrInternal, err)
	}

	body, err := c.do(ctx, operationCreateLink, http.MethodPost, "/links", payload)
	if err != nil {
		return nil, err
	}

	var resp linkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: CreateLink - decode response: %v", ErrInvalidResponse, err)
	}

	linkURL := resp.url()
	if linkURL == "" {
		c.log.Warn("Cashfree CreateLink: response without link url for link_id=%s", req.LinkID)
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    "Payment link not received from Cashfree.",
			Body:       body,
		}
	}

	linkID := resp.LinkID
	if linkID == "" {
		linkID = string(resp.CfLinkID)
	}
	if linkID == "" {
		linkID = req.LinkID
	}

	return &Link{
		LinkID:     linkID,
		LinkURL:    linkURL,
		LinkStatus: resp.LinkStatus,
		Raw:        json.RawMessage(body),
	}, nil
}

// GetLinkOrders возвращает заказы, созданные по ссылке, последний заказ первым
// Ответ, не являющийся JSON-массивом, трактуется как отсутствие заказов
func (c *Client) GetLinkOrders(ctx context.Context, linkID string) ([]LinkOrder, error) {
	path := "/links/" + url.PathEscape(linkID) + "/orders"

	body, err := c.do(ctx, operationGetLinkOrders, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.log.Warn("Cashfree GetLinkOrders: non-array response for link_id=%s, treating as no orders", linkID)
		return []LinkOrder{}, nil
	}

	orders := make([]LinkOrder, 0)
	if err := json.Unmarshal(trimmed, &orders); err != nil {
		return nil, fmt.Errorf("%w: GetLinkOrders - decode response: %v", ErrInvalidResponse, err)
	}

	return orders, nil
}

// do выполняет запрос с повторами при сетевых ошибках и ответах 5xx
// Ответы 4xx не повторяются
func (c *Client) do(ctx context.Context, operation, method, path string, payload []byte) ([]byte, error) {
	start := time.Now()
	attempt := 0

	var respBody []byte
	call := func() error {
		attempt++

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %s - create request: %v", ErrInternal, operation, err))
		}

		req.Header.Set("x-client-id", c.cfg.AppID)
		req.Header.Set("x-client-secret", c.cfg.SecretKey)
		req.Header.Set("x-api-version", c.cfg.APIVersion)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %s - execute request: %v", ErrUnavailable, operation, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return fmt.Errorf("%w: %s - read response: %v", ErrUnavailable, operation, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				Message:    errorMessage(body),
				Body:       body,
			}
			if apiErr.Retryable() {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}

		respBody = body
		return nil
	}

	err := backoff.RetryNotify(call, c.policy(ctx), func(err error, wait time.Duration) {
		c.log.Warn("Cashfree %s: attempt %d failed, retrying in %s: %v", operation, attempt, wait, err)
	})

	c.observe(operation, start, err)

	if err != nil {
		c.log.Error("Cashfree %s: failed after %d attempt(s): %v", operation, attempt, err)
		return nil, err
	}

	return respBody, nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.InitialInterval
	exp.MaxElapsedTime = c.cfg.MaxElapsedTime

	var b backoff.BackOff = exp
	if c.cfg.MaxRetries >= 0 {
		b = backoff.WithMaxRetries(exp, uint64(c.cfg.MaxRetries))
	}

	return backoff.WithContext(b, ctx)
}

func (c *Client) observe(operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}

	outcome := "success"
	var apiErr *APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr) && !apiErr.Retryable():
		outcome = "rejected"
	default:
		outcome = "unavailable"
	}

	c.metrics.GatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	c.metrics.GatewayRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// errorMessage достает сообщение из тела ошибки Cashfree
func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		switch {
		case e.Message != "":
			return e.Message
		case e.Error != "":
			return e.Error
		}
	}
	return "cashfree request failed"
}
