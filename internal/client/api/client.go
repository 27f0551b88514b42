package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/gophqueue/internal/client/queue"
	"github.com/iudanet/gophqueue/internal/models"
	"github.com/iudanet/gophqueue/pkg/api"
)

// Проверяем, что Client реализует queue.RemoteSync
var _ queue.RemoteSync = (*Client)(nil)

// StatusError ответ сервера с кодом вне диапазона 2xx
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound проверяет, что сервер ответил 404
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client представляет HTTP клиент для взаимодействия с сервером записей
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
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

// SetAccessToken задает токен, передаваемый в заголовке Authorization
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// Save создает запись (POST на путь коллекции) или обновляет существующую
// (PUT на путь записи) и возвращает атрибуты, подтвержденные сервером
func (c *Client) Save(ctx context.Context, req queue.SaveRequest) (models.Attributes, error) {
	method := http.MethodPut
	path := req.EntityPath
	headers := map[string]string{}

	if req.IsNew() {
		method = http.MethodPost
		path = req.CollectionPath
		if req.ClientID != "" {
			headers[api.HeaderClientID] = req.ClientID
		}
	}

	var resp models.Attributes
	if err := c.doRequest(ctx, method, path, headers, req.Attributes, &resp); err != nil {
		return nil, fmt.Errorf("save request failed: %w", err)
	}
	if resp == nil {
		resp = models.Attributes{}
	}

	return resp, nil
}

// Destroy удаляет запись. Ответ 404 считается успехом: записи уже нет.
func (c *Client) Destroy(ctx context.Context, path string) error {
	err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("destroy request failed: %w", err)
	}
	return nil
}

// Get возвращает одну запись по пути
func (c *Client) Get(ctx context.Context, path string) (models.Attributes, error) {
	var resp models.Attributes
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return resp, nil
}

// List возвращает все записи коллекции
func (c *Client) List(ctx context.Context, collectionPath string) ([]models.Attributes, error) {
	var resp api.ListRecordsResponse
	if err := c.doRequest(ctx, http.MethodGet, collectionPath, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}

	records := make([]models.Attributes, 0, len(resp.Records))
	for _, r := range resp.Records {
		records = append(records, models.Attributes(r))
	}
	return records, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, api.HealthPath, nil, nil, &resp); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, headers map[string]string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
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

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := string(respBody)
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			message = errResp.Error
			if errResp.Message != "" {
				message = errResp.Message
			}
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: message}
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
