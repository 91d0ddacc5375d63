// Пакет backend — типизированный клиент REST API MontajPro.
// По одному методу на эндпоинт, сгруппированы по ролям и сущностям.
// Клиент ничего не кэширует и не ретраит: каждый вызов — один HTTP-запрос,
// ошибка отдается вызывающему как есть.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client — клиент бэкенда. Нулевой token означает неавторизованные вызовы
// (только /auth). Для вызовов от имени пользователя берите WithToken.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New создает клиент для указанного базового адреса бэкенда.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken возвращает копию клиента, привязанную к bearer-токену пользователя.
// Исходный клиент не меняется: один Client безопасно делить между чатами.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL возвращает базовый адрес бэкенда.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do выполняет один запрос: сериализует body, подставляет query и заголовки,
// разбирает ответ в out (если out != nil). Любой не-2xx превращается в *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка подготовки запроса %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req, method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка запроса к бэкенду %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		log.Printf("backend: %s %s -> %d: %s", method, path, resp.StatusCode, apiErr.Detail)
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("ошибка разбора ответа %s %s: %w", method, path, err)
	}
	return nil
}

// setCommonHeaders ставит авторизацию и ключ идемпотентности для мутаций.
func (c *Client) setCommonHeaders(req *http.Request, method string) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotence-Key", uuid.New().String())
	}
}

// get/post/patch/delete — короткие обертки над do.

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
