package download

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ytget/mediadl/internal/model"
)

// DefaultTimeout bounds a whole request, body included. The server fetches the media
// before replying, so the first byte can take minutes.
const DefaultTimeout = 10 * time.Minute

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Response is a successful reply. Either Message is set and Body is nil, or Body streams
// the file named Filename.
type Response struct {
	Message  string
	Filename string
	Size     int64 // -1 when unknown
	Body     io.ReadCloser
}

// API performs a download request.
type API interface {
	Download(ctx context.Context, req model.DownloadRequest) (*Response, error)
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type replyJSON struct {
	OK      *bool  `json:"ok,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Download posts req to its endpoint. The caller must close Response.Body when set.
func (c *Client) Download(ctx context.Context, req model.DownloadRequest) (*Response, error) {
	path, payload, fallback, err := endpoint(req)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, readAPIError(resp)
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		defer resp.Body.Close()
		var reply replyJSON
		if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
			return nil, fmt.Errorf("failed to decode server reply: %w", err)
		}
		if reply.OK != nil && !*reply.OK && reply.Error != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: reply.Error}
		}
		msg := reply.Message
		if msg == "" {
			msg = reply.Error
		}
		return &Response{Message: msg, Size: -1}, nil
	}

	return &Response{
		Filename: ParseContentDisposition(resp.Header.Get("Content-Disposition"), fallback),
		Size:     resp.ContentLength,
		Body:     resp.Body,
	}, nil
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("download failed (status %d)", resp.StatusCode),
	}
	var reply replyJSON
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&reply); err == nil && reply.Error != "" {
		apiErr.Message = reply.Error
	}
	return apiErr
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

var dispositionName = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;]+)|filename="?([^";]+)"?`)

// ParseContentDisposition returns the file name announced in header, preferring the
// RFC 5987 filename* form, or fallback when none can be read.
func ParseContentDisposition(header, fallback string) string {
	if header == "" {
		return fallback
	}
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := strings.TrimSpace(params["filename"]); name != "" {
			return name
		}
	}
	// Lenient match for headers the mime parser rejects, such as unquoted spaces.
	m := dispositionName.FindStringSubmatch(header)
	if m == nil {
		return fallback
	}
	picked := m[1]
	if picked == "" {
		picked = m[2]
	}
	if decoded, err := url.PathUnescape(picked); err == nil {
		picked = decoded
	}
	if picked = strings.TrimSpace(picked); picked == "" {
		return fallback
	}
	return picked
}

// IsAPIError reports whether err carries a server reply and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
