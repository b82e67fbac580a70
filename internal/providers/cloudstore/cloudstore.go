// Package cloudstore uploads desktop files to a remote storage
// endpoint. Failed uploads are queued and retried on demand.
package cloudstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/glasspane/webtop/internal/infrastructure/logging"
	"github.com/glasspane/webtop/internal/infrastructure/monitoring"
	"github.com/glasspane/webtop/internal/infrastructure/resilience"
	"github.com/glasspane/webtop/internal/shared/id"
)

var (
	// ErrNotConfigured is returned when no endpoint is set.
	ErrNotConfigured = errors.New("cloud storage endpoint not configured")
	// ErrEmptyUpload is returned for zero-length payloads.
	ErrEmptyUpload = errors.New("upload payload is empty")
)

// Upload is a queued or completed transfer.
type Upload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	QueuedAt  time.Time `json:"queued_at"`
}

// Config holds client settings.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Client uploads gzip-compressed payloads with retry and a circuit
// breaker in front of the remote endpoint.
type Client struct {
	cfg     Config
	resty   *resty.Client
	breaker *resilience.Breaker
	logger  *logging.Logger
	metrics *monitoring.Metrics

	mu      sync.Mutex
	pending []*pendingUpload
}

type pendingUpload struct {
	Upload
	compressed []byte
}

// New creates a cloud storage client.
func New(cfg Config, logger *logging.Logger, metrics *monitoring.Metrics) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "webtop-cloudstore/1.0").
		SetTransport(retryClient.HTTPClient.Transport)
	if cfg.APIKey != "" {
		restyClient.SetAuthToken(cfg.APIKey)
	}

	return &Client{
		cfg:   cfg,
		resty: restyClient,
		breaker: resilience.New("cloudstore", resilience.Settings{
			FailureThreshold: 5,
			Cooldown:         15 * time.Second,
			MaxTrials:        2,
		}),
		logger:  logger,
		metrics: metrics,
	}
}

// Store compresses and uploads a file. On failure the upload stays
// queued for a later Flush. Returns the upload record either way.
func (c *Client) Store(ctx context.Context, name string, data []byte) (*Upload, error) {
	if c.cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	compressed, err := compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress upload: %w", err)
	}

	up := &pendingUpload{
		Upload: Upload{
			ID:       id.NewRequestID().String(),
			Name:     name,
			Size:     len(data),
			QueuedAt: time.Now(),
		},
		compressed: compressed,
	}

	if err := c.send(ctx, up); err != nil {
		c.mu.Lock()
		c.pending = append(c.pending, up)
		c.mu.Unlock()
		c.logger.Warn("Upload queued for retry",
			zap.String("upload_id", up.ID),
			zap.String("name", name),
			zap.Error(err),
		)
		record := up.Upload
		return &record, nil
	}

	record := up.Upload
	return &record, nil
}

// Flush retries every pending upload, keeping the ones that fail
// again. Returns how many uploads were delivered.
func (c *Client) Flush(ctx context.Context) (int, error) {
	if c.cfg.Endpoint == "" {
		return 0, ErrNotConfigured
	}

	c.mu.Lock()
	queue := c.pending
	c.pending = nil
	c.mu.Unlock()

	delivered := 0
	var remaining []*pendingUpload
	for _, up := range queue {
		if err := c.send(ctx, up); err != nil {
			remaining = append(remaining, up)
			continue
		}
		delivered++
	}

	c.mu.Lock()
	c.pending = append(remaining, c.pending...)
	c.mu.Unlock()
	return delivered, nil
}

// Pending returns a snapshot of queued uploads.
func (c *Client) Pending() []Upload {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Upload, 0, len(c.pending))
	for _, up := range c.pending {
		out = append(out, up.Upload)
	}
	return out
}

func (c *Client) send(ctx context.Context, up *pendingUpload) error {
	up.Attempts++

	err := c.breaker.Execute(func() error {
		resp, err := c.resty.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/octet-stream").
			SetHeader("Content-Encoding", "gzip").
			SetHeader("X-File-Name", up.Name).
			SetBody(up.compressed).
			Post(c.cfg.Endpoint + "/files")
		if err != nil {
			return err
		}
		if resp.StatusCode() >= http.StatusBadRequest {
			return fmt.Errorf("upload rejected with status %d", resp.StatusCode())
		}
		return nil
	})

	if err != nil {
		up.LastError = err.Error()
		c.recordUpload("failed")
		return err
	}

	up.LastError = ""
	c.recordUpload("delivered")
	return nil
}

func (c *Client) recordUpload(status string) {
	if c.metrics != nil {
		c.metrics.CloudUploads.WithLabelValues(status).Inc()
	}
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
