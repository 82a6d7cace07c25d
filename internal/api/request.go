package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"go.uber.org/zap"

	apierrors "github.com/diogo/aicms/internal/errors"
	"github.com/diogo/aicms/internal/models"
)

// maxResponseSize caps how much of a response body is read
const maxResponseSize = 8 << 20

// do sends one JSON request and returns the body of a 2xx response.
// Transport failures map to NetworkError or TimeoutError, other statuses to ServerError.
func (c *Client) do(ctx context.Context, method, operation, path string, payload any) ([]byte, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("%s: %w", operation, apierrors.ErrClientClosed)
	}

	endpoint := models.JoinURL(c.baseURL, path)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.Debug("request started",
		zap.String("operation", operation),
		zap.String("method", method),
		zap.String("endpoint", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// a cancelled context surfaces from the transport as a generic error
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		c.logger.Warn("request failed",
			zap.String("operation", operation),
			zap.String("endpoint", endpoint),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return nil, apierrors.FromTransport(operation, endpoint, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	data, err := readBody(resp.Body)
	if err != nil {
		return nil, apierrors.FromTransport(operation, endpoint, err)
	}

	c.logger.Info("request finished",
		zap.String("operation", operation),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serverErr := apierrors.NewServerError(resp.StatusCode, operation, endpoint)
		serverErr.WithBody(string(data))
		return nil, serverErr
	}

	return data, nil
}

// readBody reads a response body up to maxResponseSize
func readBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(r, maxResponseSize))
}
