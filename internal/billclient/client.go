// Package billclient — HTTP-клиент к API notes de frais. Реализует newbill.Store.
package billclient

import (
	"billed/internal/models"
	"billed/internal/newbill"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// APIError — ответ сервера с не-2xx статусом.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Erreur %d", e.StatusCode)
	}
	return fmt.Sprintf("Erreur %d: %s", e.StatusCode, e.Message)
}

// envelope — формат ответов сервера ({data, error}).
type envelope struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken — копия клиента с другим access-токеном.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

var _ newbill.Store = (*Client)(nil)

// Create отправляет чек multipart-формой (file + email).
func (c *Client) Create(ctx context.Context, req newbill.CreateRequest) (newbill.CreateResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	name := req.File.Name
	if name == "" {
		name = req.File.Path
	}
	contentType := req.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(name)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return newbill.CreateResponse{}, fmt.Errorf("multipart file: %w", err)
	}
	if _, err := part.Write(req.File.Data); err != nil {
		return newbill.CreateResponse{}, fmt.Errorf("multipart file: %w", err)
	}
	if err := mw.WriteField("email", req.Email); err != nil {
		return newbill.CreateResponse{}, fmt.Errorf("multipart email: %w", err)
	}
	if err := mw.Close(); err != nil {
		return newbill.CreateResponse{}, fmt.Errorf("multipart close: %w", err)
	}

	var resp newbill.CreateResponse
	if err := c.do(ctx, http.MethodPost, "/api/bills", mw.FormDataContentType(), &body, &resp); err != nil {
		return newbill.CreateResponse{}, err
	}
	if resp.Key == "" {
		return newbill.CreateResponse{}, errors.New("billclient: create returned no bill key")
	}
	return resp, nil
}

// Update отправляет собранную запись на PATCH /api/bills/{selector}.
func (c *Client) Update(ctx context.Context, req newbill.UpdateRequest) error {
	if req.Selector == "" {
		return errors.New("billclient: empty bill selector")
	}
	path := "/api/bills/" + url.PathEscape(req.Selector)
	return c.do(ctx, http.MethodPatch, path, "application/json", bytes.NewReader(req.Data), nil)
}

func (c *Client) List(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	if err := c.do(ctx, http.MethodGet, "/api/bills", "", nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	Type        string `json:"type"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "application/json", bytes.NewReader(payload), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	var jsonErr error
	if len(raw) > 0 {
		// тело может быть не JSON (http.Error) — тогда это просто текст ошибки
		if jsonErr = json.Unmarshal(raw, &env); jsonErr != nil {
			env.Error = strings.TrimSpace(string(raw))
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	if out != nil && jsonErr != nil {
		return fmt.Errorf("decode response: %w", jsonErr)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
