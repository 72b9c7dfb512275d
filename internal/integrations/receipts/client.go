// Package receipts клиент Storage API для чеков об оплате
package receipts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с хранилищем чеков
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
	breaker    *circuit.Breaker
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, log Logger) *Client {
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = 5
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: circuit.NewThresholdBreaker(threshold),
		log:     log,
	}
}

// Upload загружает файл, перезаписывая существующий по тому же пути
func (c *Client) Upload(ctx context.Context, path, contentType string, body io.Reader) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	if err := c.do(req); err != nil {
		return err
	}

	c.log.Info("Receipt uploaded: bucket=%s, path=%s", c.bucket, path)
	return nil
}

// PublicURL публичная ссылка на объект
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, escapePath(path))
}

// Remove удаляет объекты. Отсутствующие пути ошибкой не считаются.
func (c *Client) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	payload, err := json.Marshal(removeRequest{Prefixes: paths})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req); err != nil {
		return err
	}

	c.log.Info("Receipts removed: bucket=%s, paths=%v", c.bucket, paths)
	return nil
}

// do выполняет запрос через circuit breaker.
// Сетевые ошибки и 5xx размыкают breaker, 4xx - нет.
func (c *Client) do(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	var clientErr error
	err := c.breaker.Call(func() error {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, readError(resp.Body))
		case resp.StatusCode == http.StatusRequestEntityTooLarge:
			clientErr = fmt.Errorf("%w: %s", ErrTooLarge, readError(resp.Body))
		default:
			clientErr = fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, readError(resp.Body))
		}
		return nil
	}, 0)

	if errors.Is(err, circuit.ErrBreakerOpen) {
		c.log.Warn("Receipt storage circuit breaker is open, %s %s rejected", req.Method, req.URL.Path)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		c.log.Error("Receipt storage request %s %s failed: %v", req.Method, req.URL.Path, err)
		return err
	}
	return clientErr
}

func readError(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return strings.TrimSpace(string(data))
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
