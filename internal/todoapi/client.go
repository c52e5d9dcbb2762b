package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service is the set of remote operations the todo view depends on.
// It is implemented by *Client and can be faked in tests.
type Service interface {
	ListAll(ctx context.Context) ([]TodoItem, error)
	Create(ctx context.Context, text string) (TodoItem, error)
	Update(ctx context.Context, id string, patch Patch) (TodoItem, error)
	Remove(ctx context.Context, id string) (json.RawMessage, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the todos REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	logger    *log.Logger
	tracer    trace.Tracer
	userAgent string
}

const (
	defaultUserAgent = "todo/0.1"
	tracerName       = "github.com/five82/todo/internal/todoapi"
	collectionPath   = "todos"
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracerProvider sets the provider spans are created from. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at baseURL, e.g. "http://localhost:5000/api".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		logger:    log.New(io.Discard),
		tracer:    otel.Tracer(tracerName),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListAll returns every stored item in service order. A success body that is
// not a JSON array yields an empty list.
func (c *Client) ListAll(ctx context.Context) ([]TodoItem, error) {
	const op = "list todos"
	target := c.baseURL.JoinPath(collectionPath)
	var items []TodoItem
	err := c.traced(ctx, op, http.MethodGet, target, func(ctx context.Context) error {
		doc, err := c.do(ctx, op, http.MethodGet, target, nil, false)
		if err != nil {
			return err
		}
		elems, ok := doc.([]any)
		if !ok {
			c.logger.Warn("list response is not an array", "op", op)
			items = []TodoItem{}
			return nil
		}
		items = make([]TodoItem, 0, len(elems))
		for i, elem := range elems {
			item, err := c.decodeItem(fmt.Sprintf("%s[%d]", op, i), elem)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create stores a new item with the given text. Empty text is not rejected
// here; callers guard against it.
func (c *Client) Create(ctx context.Context, text string) (TodoItem, error) {
	const op = "create todo"
	target := c.baseURL.JoinPath(collectionPath)
	var item TodoItem
	err := c.traced(ctx, op, http.MethodPost, target, func(ctx context.Context) error {
		doc, err := c.do(ctx, op, http.MethodPost, target, createRequest{Text: text}, false)
		if err != nil {
			return err
		}
		item, err = c.decodeItem(op, doc)
		return err
	})
	if err != nil {
		return TodoItem{}, err
	}
	return item, nil
}

// Update applies patch to the item and returns the full updated item.
func (c *Client) Update(ctx context.Context, id string, patch Patch) (TodoItem, error) {
	const op = "update todo"
	if strings.TrimSpace(id) == "" {
		return TodoItem{}, &RequestFailedError{Op: op, Message: "item id required"}
	}
	target := c.itemURL(id)
	var item TodoItem
	err := c.traced(ctx, op, http.MethodPatch, target, func(ctx context.Context) error {
		doc, err := c.do(ctx, op, http.MethodPatch, target, patch, false)
		if err != nil {
			return err
		}
		item, err = c.decodeItem(op, doc)
		return err
	})
	if err != nil {
		return TodoItem{}, err
	}
	return item, nil
}

// Remove deletes the item and returns the service's confirmation payload. An
// empty 2xx body counts as confirmation and yields a nil payload.
func (c *Client) Remove(ctx context.Context, id string) (json.RawMessage, error) {
	const op = "delete todo"
	if strings.TrimSpace(id) == "" {
		return nil, &RequestFailedError{Op: op, Message: "item id required"}
	}
	target := c.itemURL(id)
	var raw json.RawMessage
	err := c.traced(ctx, op, http.MethodDelete, target, func(ctx context.Context) error {
		doc, err := c.do(ctx, op, http.MethodDelete, target, nil, true)
		if err != nil || doc == nil {
			return err
		}
		raw, err = json.Marshal(doc)
		if err != nil {
			return &RequestFailedError{Op: op, Message: "encode confirmation", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) itemURL(id string) *url.URL {
	return c.baseURL.JoinPath(collectionPath, url.PathEscape(id))
}

func (c *Client) decodeItem(op string, doc any) (TodoItem, error) {
	if err := validateItem(op, doc); err != nil {
		c.logger.Error("invalid response", "op", op, "err", err)
		return TodoItem{}, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return TodoItem{}, &InvalidResponseError{Op: op, Reason: err.Error()}
	}
	var item TodoItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return TodoItem{}, &InvalidResponseError{Op: op, Reason: err.Error()}
	}
	return item, nil
}

// traced runs fn inside a client span named after op. Any error fn returns,
// including response validation failures, marks the span as failed.
func (c *Client) traced(ctx context.Context, op, method string, target *url.URL, fn func(context.Context) error) error {
	ctx, span := c.tracer.Start(ctx, "todoapi."+strings.ReplaceAll(op, " ", "_"),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", target.String()),
		))
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// do performs one round trip and returns the decoded JSON body. An empty 2xx
// body is a decode failure unless allowEmpty is set, in which case it yields
// a nil document.
func (c *Client) do(ctx context.Context, op, method string, target *url.URL, body any, allowEmpty bool) (any, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestFailedError{Op: op, Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, &RequestFailedError{Op: op, Message: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("request", "op", op, "method", method, "url", target.String())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", "op", op, "method", method, "url", target.String(), "err", err)
		return nil, &RequestFailedError{Op: op, Message: networkErrorMessage, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("read response", "op", op, "status", resp.StatusCode, "err", err)
		return nil, &RequestFailedError{Op: op, Status: resp.StatusCode, Message: networkErrorMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestFailedError{Op: op, Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
		c.logger.Error("api error",
			"op", op,
			"status", resp.StatusCode,
			"statusText", http.StatusText(resp.StatusCode),
			"message", reqErr.Message)
		return nil, reqErr
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if allowEmpty {
			return nil, nil
		}
		c.logger.Error("decode response", "op", op, "status", resp.StatusCode, "err", io.EOF)
		return nil, &RequestFailedError{Op: op, Status: resp.StatusCode, Message: "decode response", Err: io.EOF}
	}
	var doc any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		c.logger.Error("decode response", "op", op, "status", resp.StatusCode, "err", err)
		return nil, &RequestFailedError{Op: op, Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return doc, nil
}

// errorMessage extracts {"message": ...} from an error body.
func errorMessage(data []byte, status int) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return networkErrorMessage
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// ParseBaseURL normalizes a configured service root. Scheme-less values get
// http://; relative values are rejected.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if strings.HasPrefix(trimmed, "/") {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
