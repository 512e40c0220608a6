package http_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// GetInput defines the inputs of 'http get'.
type GetInput struct {
	URL     string   `cty:"url"`
	Method  *string  `cty:"method"`
	Timeout *float64 `cty:"timeout"`
}

// requester sends the requests of one application instance.
type requester struct {
	client *http.Client
}

// OnRunHttpGet is the handler for the 'http get' task.
func (q *requester) OnRunHttpGet(ctx context.Context, input *GetInput) (any, error) {
	method := http.MethodGet
	if input.Method != nil {
		method = *input.Method
	}
	timeout := defaultTimeout
	if input.Timeout != nil {
		if *input.Timeout <= 0 {
			return nil, fmt.Errorf("timeout must be positive, got %v", *input.Timeout)
		}
		timeout = time.Duration(*input.Timeout * float64(time.Second))
	}

	u, err := url.Parse(input.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("'%s' is not an absolute http or https URL", input.URL)
	}

	logger := ctxlog.FromContext(ctx).With("method", method, "url", input.URL)
	logger.Info("Making HTTP request")

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Info("Received HTTP response", "status", resp.Status)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"status_code": cty.NumberIntVal(int64(resp.StatusCode)),
		"body":        cty.StringVal(string(bodyBytes)),
	}), nil
}
