package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/passkeeper/pkg/api"
)

// ErrUnauthorized возвращается при ответе 401
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound возвращается при ответе 404
var ErrNotFound = errors.New("not found")

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент. token передается как Bearer в защищенных запросах.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// List возвращает все записи текущего пользователя
func (c *Client) List(ctx context.Context) ([]api.CredentialRecord, error) {
	var records []api.CredentialRecord
	if err := c.doRequest(ctx, http.MethodGet, "/api/passwords", nil, &records); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	return records, nil
}

// Create сохраняет новую запись
func (c *Client) Create(ctx context.Context, req api.CredentialRequest) (*api.CredentialRecord, error) {
	var record api.CredentialRecord
	if err := c.doRequest(ctx, http.MethodPost, "/api/passwords", req, &record); err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	return &record, nil
}

// Update полностью заменяет поля записи
func (c *Client) Update(ctx context.Context, id string, req api.CredentialRequest) (*api.CredentialRecord, error) {
	var record api.CredentialRecord
	if err := c.doRequest(ctx, http.MethodPut, "/api/passwords/"+url.PathEscape(id), req, &record); err != nil {
		return nil, fmt.Errorf("update request failed: %w", err)
	}
	return &record, nil
}

// Delete удаляет запись
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/passwords/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	return nil
}

// Health проверяет доступность сервера (ответ без конверта)
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &health, fmt.Errorf("server unhealthy (%d): %s", resp.StatusCode, health.Status)
	}
	return &health, nil
}

// doRequest выполняет запрос и раскладывает поле data конверта в result
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Success bool            `json:"success"`
	}
	decodeErr := json.Unmarshal(respBody, &envelope)

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var kind error
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			kind = ErrUnauthorized
		case http.StatusNotFound:
			kind = ErrNotFound
		}
		if decodeErr == nil && envelope.Message != "" {
			if kind != nil {
				return fmt.Errorf("%w: %s", kind, envelope.Message)
			}
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, envelope.Message)
		}
		if kind != nil {
			return kind
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	// Декодируем успешный ответ
	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}
