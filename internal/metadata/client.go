// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/ludex/internal/platform/apperr"
	"github.com/taibuivan/ludex/internal/platform/constants"
)

// maxPayloadSize bounds upstream response bodies.
const maxPayloadSize = 4 << 20

// Fetcher retrieves the raw JSON of one item.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, id uint64) ([]byte, error)
}

// Client is the HTTP client of the metadata service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a metadata client.
//
// baseURL has no trailing slash requirement; apiKey may be empty for
// services that do not authenticate.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger.With(slog.String("component", "metadata_client")),
	}
}

/*
Fetch downloads one item.

Description: Request format is GET {base}/{endpoint}/{id}. The API key, when
configured, is sent in the X-Api-Key header.

Returns:
  - []byte: Raw JSON body
  - error: apperr.NotFound on 404, apperr.Upstream on transport failures and
    other non-2xx statuses
*/
func (c *Client) Fetch(ctx context.Context, endpoint string, id uint64) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%s/%s", c.baseURL, endpoint, strconv.FormatUint(id, 10))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("metadata: build request: %w", err))
	}
	request.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		request.Header.Set(constants.HeaderMetadataAPIKey, c.apiKey)
	}

	startTime := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("metadata: GET %s: %w", requestURL, err))
	}
	defer response.Body.Close()

	c.logger.Debug("metadata_fetched",
		slog.String("endpoint", endpoint),
		slog.Uint64("id", id),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("Metadata item")
	case response.StatusCode < 200 || response.StatusCode > 299:
		return nil, apperr.Upstream(fmt.Errorf("metadata: GET %s: unexpected status %d", requestURL, response.StatusCode))
	}

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxPayloadSize))
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("metadata: read body: %w", err))
	}
	return payload, nil
}
