package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"k8s.io/klog/v2"

	"github.com/llmonitor/barlist/internal/detect"
)

// Source produces a fresh batch of records on every Load.
type Source interface {
	Load(ctx context.Context) (Batch, error)
	Name() string
}

// Bytes serves a fixed payload. Used for stdin, which can only be read once.
type Bytes struct {
	Label  string
	Data   []byte
	Format detect.Format
}

func (b *Bytes) Name() string { return b.Label }

func (b *Bytes) Load(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}
	return Decode(b.Format, b.Data)
}

// ReadAll drains r into a Bytes source.
func ReadAll(label string, r io.Reader, format detect.Format) (*Bytes, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", label, err)
	}
	return &Bytes{Label: label, Data: data, Format: format}, nil
}

// File re-reads a file on every Load.
type File struct {
	Path   string
	Format detect.Format
}

func (f *File) Name() string { return f.Path }

func (f *File) Load(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Batch{}, err
	}
	klog.V(2).InfoS("read records file", "path", f.Path, "bytes", len(data))
	return Decode(f.Format, data)
}

// Default HTTP client settings.
const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2
)

// HTTP fetches records with a GET request on every Load.
type HTTP struct {
	URL    string
	Token  string
	Format detect.Format

	client *resty.Client
}

// NewHTTP creates an HTTP source. A zero timeout or negative retry count
// selects the defaults.
func NewHTTP(url, token string, timeout time.Duration, retries int, format detect.Format) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retries < 0 {
		retries = DefaultRetries
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(250*time.Millisecond).
		SetHeader("Accept", "application/json, application/x-ndjson, application/yaml")
	return &HTTP{URL: url, Token: token, Format: format, client: client}
}

func (h *HTTP) Name() string { return h.URL }

func (h *HTTP) Load(ctx context.Context) (Batch, error) {
	req := h.client.R().SetContext(ctx)
	if h.Token != "" {
		req.SetAuthToken(h.Token)
	}
	start := time.Now()
	resp, err := req.Get(h.URL)
	if err != nil {
		return Batch{}, fmt.Errorf("GET %s: %w", h.URL, err)
	}
	if resp.IsError() {
		return Batch{}, fmt.Errorf("GET %s: %s", h.URL, resp.Status())
	}
	klog.V(2).InfoS("fetched records", "url", h.URL, "status", resp.StatusCode(), "bytes", len(resp.Body()), "elapsed", time.Since(start))
	return Decode(h.Format, resp.Body())
}
