package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"advocate-portal-client/internal/dto"
	"advocate-portal-client/internal/pkg/logger"

	"github.com/google/uuid"
)

const (
	loginEndpoint     = "/auth/login"
	documentsEndpoint = "/portal/documents"
	uploadEndpoint    = "/portal/documents/upload"
	assistantEndpoint = "/qa-chatbot"
)

// IPortalClient covers the four remote operations of the portal service.
// Every operation is a single one-shot HTTP exchange; retry is always a
// user-initiated re-submit.
type IPortalClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListDocuments(ctx context.Context, token string) ([]dto.DocumentResponse, error)
	UploadDocument(ctx context.Context, token, filename string, file io.Reader) (string, error)
	AskAssistant(ctx context.Context, query string) (string, error)
}

type Client struct {
	baseURL        string
	client         *http.Client
	uploadClient   *http.Client
	log            logger.ILogger
	onUnauthorized func()
}

var _ IPortalClient = &Client{}

func NewClient(baseURL string, requestTimeout, uploadTimeout time.Duration, log logger.ILogger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: requestTimeout,
		},
		// Uploads wait on server-side file processing and summary generation,
		// so they get their own, much longer timeout.
		uploadClient: &http.Client{
			Timeout: uploadTimeout,
		},
		log: log,
	}
}

// SetOnUnauthorized registers the hook fired whenever an authenticated request
// comes back 401. The session service registers itself here so a rejected
// credential tears the session down no matter which operation observed it.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+loginEndpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var res dto.LoginResponse
	// The login exchange itself is unauthenticated; a 401 here means bad
	// credentials, not a revoked session.
	if err := c.send(c.client, req, false, &res); err != nil {
		return "", err
	}
	return res.AccessToken, nil
}

func (c *Client) ListDocuments(ctx context.Context, token string) ([]dto.DocumentResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+documentsEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var res []dto.DocumentResponse
	if err := c.send(c.client, req, true, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) UploadDocument(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+uploadEndpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var res dto.DocumentResponse
	if err := c.send(c.uploadClient, req, true, &res); err != nil {
		return "", err
	}
	return res.Filename, nil
}

func (c *Client) AskAssistant(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(dto.QueryRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	// The assistant endpoint takes no bearer token in the observed contract.
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+assistantEndpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var res dto.QueryResponse
	if err := c.send(c.client, req, false, &res); err != nil {
		return "", err
	}
	return res.Answer, nil
}

// send issues the request and classifies the outcome: transport failure ->
// NetworkError, 401 on an authenticated exchange -> ErrUnauthorized (plus the
// registered hook), any other non-2xx -> RequestError with the server detail.
func (c *Client) send(client *http.Client, req *http.Request, authed bool, out interface{}) error {
	requestId := uuid.NewString()
	c.log.Debug("gateway", "request issued", map[string]interface{}{
		"request_id": requestId,
		"method":     req.Method,
		"url":        req.URL.String(),
	})

	res, err := client.Do(req)
	if err != nil {
		c.log.Warn("gateway", "transport failure", map[string]interface{}{
			"request_id": requestId,
			"error":      err.Error(),
		})
		return &NetworkError{Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		c.log.Debug("gateway", "request settled", map[string]interface{}{
			"request_id": requestId,
			"status":     res.StatusCode,
		})
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
		return nil
	}

	if res.StatusCode == http.StatusUnauthorized && authed {
		c.log.Warn("gateway", "credential rejected", map[string]interface{}{
			"request_id": requestId,
			"url":        req.URL.String(),
		})
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	reqErr := &RequestError{
		Status:  res.StatusCode,
		Message: errorDetail(resBody, res.StatusCode),
	}
	c.log.Warn("gateway", "request failed", map[string]interface{}{
		"request_id": requestId,
		"status":     res.StatusCode,
		"detail":     reqErr.Message,
	})
	return reqErr
}

// errorDetail pulls the {detail} field out of an error body, falling back to
// the HTTP status text when absent or unparsable.
func errorDetail(body []byte, status int) string {
	var res dto.ErrorResponse
	if err := json.Unmarshal(body, &res); err == nil && res.Detail != "" {
		return res.Detail
	}
	return http.StatusText(status)
}
