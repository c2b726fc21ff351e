package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/internal/rate"
)

// Executor handles rate-limited HTTP execution with JSON decoding. Requests
// are issued exactly once: a failed operation is reported to the caller, never
// retried behind its back, so the collection stays safe to retry by hand.
type Executor struct {
	logger       *zap.Logger
	rateMgr      *rate.Manager
	http         *http.Client
	tag          string
	errorHandler func(status int, body []byte) error
	observer     func(method, endpoint string, status int, elapsed time.Duration)
}

// New creates an Executor. errorHandler is called on non-2xx responses to
// produce a caller-facing error; if nil, a default error is returned.
// observer, when set, receives one callback per completed request.
func New(
	logger *zap.Logger,
	rateMgr *rate.Manager,
	httpClient *http.Client,
	tag string,
	errorHandler func(status int, body []byte) error,
	observer func(method, endpoint string, status int, elapsed time.Duration),
) *Executor {
	return &Executor{
		logger:       logger,
		rateMgr:      rateMgr,
		http:         httpClient,
		tag:          tag,
		errorHandler: errorHandler,
		observer:     observer,
	}
}

// DoJSON executes req with rate limiting, then JSON-decodes the response into
// out. rateLimitKey scopes the limiter per endpoint. endpoint labels metrics.
func (e *Executor) DoJSON(ctx context.Context, req *http.Request, rateLimitKey, endpoint string, out any) error {
	if e.rateMgr != nil {
		if err := e.rateMgr.Wait(ctx, rateLimitKey); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	start := time.Now()
	resp, err := e.http.Do(req)
	if err != nil {
		e.logger.Warn(e.tag+".http_failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		if e.observer != nil {
			e.observer(req.Method, endpoint, 0, time.Since(start))
		}
		return fmt.Errorf("%s request failed: %w", e.tag, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if e.observer != nil {
		e.observer(req.Method, endpoint, resp.StatusCode, elapsed)
	}

	if resp.StatusCode >= 400 {
		e.logger.Warn(e.tag+".non_2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.String()),
			zap.Duration("latency", elapsed))
		if e.errorHandler != nil {
			return e.errorHandler(resp.StatusCode, body)
		}
		return fmt.Errorf("%s returned %d", e.tag, resp.StatusCode)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			e.logger.Warn(e.tag+".decode_failed",
				zap.Error(err),
				zap.String("url", req.URL.String()),
				zap.String("body", string(body)))
			return fmt.Errorf("decode failed: %w", err)
		}
	}

	e.logger.Debug(e.tag+".http_success",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return nil
}
