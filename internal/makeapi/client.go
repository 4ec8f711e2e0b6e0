package makeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL — базовый URL Make.com API (регион US по умолчанию).
const DefaultBaseURL = "https://us2.make.com/api/v2"

// requestTimeout — таймаут одного HTTP-запроса.
const requestTimeout = 30 * time.Second

// Options — параметры клиента.
//
// Задаётся ровно один из TeamID / OrganizationID: он добавляется в
// запросы как teamId= / organizationId= (валидацию выполняет пакет
// config до создания клиента).
type Options struct {
	BaseURL        string
	Token          string
	TeamID         int
	OrganizationID int
	Logger         *slog.Logger
	HTTPClient     *http.Client // для тестов; nil — клиент с таймаутом 30s
}

// Client — HTTP-клиент Make.com API.
type Client struct {
	baseURL        string
	token          string
	teamID         int
	organizationID int
	logger         *slog.Logger
	httpClient     *http.Client
}

// NewClient создаёт клиент.
func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, ErrMissingToken
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		baseURL:        baseURL,
		token:          opts.Token,
		teamID:         opts.TeamID,
		organizationID: opts.OrganizationID,
		logger:         logger,
		httpClient:     httpClient,
	}, nil
}

// TeamID возвращает настроенный team ID (0, если доступ по организации).
func (c *Client) TeamID() int { return c.teamID }

// defaultParams — параметры teamId/organizationId для запросов.
func (c *Client) defaultParams() url.Values {
	params := url.Values{}
	if c.organizationID != 0 {
		params.Set("organizationId", strconv.Itoa(c.organizationID))
	} else if c.teamID != 0 {
		params.Set("teamId", strconv.Itoa(c.teamID))
	}
	return params
}

// do выполняет запрос и декодирует JSON-ответ в result (если result != nil).
// Неуспешный статус или транспортная ошибка возвращаются как *APIError.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, result any) error {
	reqURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "url", reqURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "url", reqURL, "request_id", requestID, "error", err)
		return &APIError{RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, RequestID: requestID, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("api request failed",
			"method", method, "url", reqURL, "status", resp.StatusCode, "request_id", requestID)
		return &APIError{StatusCode: resp.StatusCode, Body: respBody, RequestID: requestID}
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

func (c *Client) patch(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, result)
}

func (c *Client) delete(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, http.MethodDelete, path, params, nil, result)
}
