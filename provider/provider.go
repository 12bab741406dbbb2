// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package provider downloads NAV histories from the fmarket open-fund API
// and index quotes from TCBS. This is the only networked part of the
// system; every request is rate limited and retried with exponential
// backoff.
package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	ErrStatusCode = errors.New("request returned invalid status code")
	ErrNoFunds    = errors.New("no funds matched the requested type")
)

// maxRetries bounds the exponential backoff applied to each request.
var maxRetries uint64 = 4

// restClient is the shared HTTP plumbing for the fmarket and TCBS clients.
type restClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

func newRESTClient(requestsPerSecond float64) *restClient {
	return &restClient{
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// getJSON performs a rate-limited GET with retries, decoding the response
// body into out.
func (c *restClient) getJSON(ctx context.Context, url string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, out)
}

// postJSON performs a rate-limited POST with retries, encoding body as JSON
// and decoding the response into out.
func (c *restClient) postJSON(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, url, payload, out)
}

func (c *restClient) doJSON(ctx context.Context, method string, url string, payload []byte, out any) error {
	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			log.Warn().Err(err).Str("Url", url).Msg("http request failed; retrying")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			err := fmt.Errorf("%w: %d", ErrStatusCode, resp.StatusCode)
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				log.Warn().Int("StatusCode", resp.StatusCode).Str("Url", url).Msg("retryable http status")
				return err
			}
			return backoff.Permanent(err)
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	return backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries),
		ctx))
}

// sleepCtx pauses between download chunks but aborts promptly on cancel.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
