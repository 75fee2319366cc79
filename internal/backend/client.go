// Package backend is the REST client for the upstream LMS backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/upload"
)

type Config struct {
	BaseURL string
	// Timeout of zero leaves requests unbounded; callers cancel through ctx.
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("client", "BackendClient"),
	}, nil
}

// APIError is a non-2xx response. Message carries the backend's own text when
// the body had one.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Method     string `json:"method"`
	Path       string `json:"path"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("backend unreachable")

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx; every request made with
// that context forwards it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok {
		return token
	}
	return ""
}

func (c *Client) getJSON(ctx context.Context, dst interface{}, format string, args ...interface{}) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf(format, args...), nil, "", dst)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, dst interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, body, "application/json", dst)
}

// sendMultipart streams fields and an optional file. Progress, when set,
// observes the file bytes only.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, fileField string, file *models.FileUpload, progress func(upload.Progress), dst interface{}) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeMultipart(mw, fields, fileField, file, progress)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	err := c.do(ctx, method, path, pr, mw.FormDataContentType(), dst)
	// unblock the writer if the request ended before the body was drained
	pr.CloseWithError(io.ErrClosedPipe)
	return err
}

func writeMultipart(mw *multipart.Writer, fields map[string]string, fileField string, file *models.FileUpload, progress func(upload.Progress)) error {
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return err
		}
	}
	if file == nil || file.Content == nil {
		return nil
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, upload.NewReader(file.Content, file.Size, progress))
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Backend request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	c.logger.DebugContext(ctx, "Backend request",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.Status),
			Method:     method,
			Path:       path,
		}
	}

	if dst == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeBody(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeBody accepts both bare payloads and {"data": ...} envelopes.
func decodeBody(raw []byte, dst interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
			return json.Unmarshal(envelope.Data, dst)
		}
	}
	return json.Unmarshal(trimmed, dst)
}

func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, msg := range []string{body.Message, body.Detail, body.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 {
		return text
	}
	return fallback
}
