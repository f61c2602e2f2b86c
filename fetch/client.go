// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/cenkalti/backoff/v4"
)

// requestRetries bounds how often a transient failure is retried before the
// error is surfaced to the caller.
const requestRetries = 3

// ErrNotFound marks a 404 from the remote side. Callers use it to tell "the
// backend has no such resource" apart from "the backend is down".
var ErrNotFound = errors.New("resource not found")

var _ Client = &client{}

// Client is the HTTP surface shared by every network-backed location type.
// All methods retry transient failures with exponential backoff and respect
// context cancellation.
type Client interface {
	// Download fetches url into the file at path, resuming partial
	// transfers across retries.
	Download(ctx context.Context, url string, path string, header http.Header) error
	// GetJSON fetches url and decodes the JSON response body into out.
	GetJSON(ctx context.Context, url string, header http.Header, out interface{}) error
	// PostJSON sends body as JSON to url and decodes the response into out.
	PostJSON(ctx context.Context, url string, header http.Header, body interface{}, out interface{}) error
	// Probe reports whether url answers at all. A single request with no
	// retries; any transport failure reads as unreachable.
	Probe(ctx context.Context, url string, header http.Header) bool
}

func NewClient() Client {
	return &client{
		grab:     grab.NewClient(),
		http:     &http.Client{},
		interval: time.Second,
	}
}

type client struct {
	grab     *grab.Client
	http     *http.Client
	interval time.Duration
}

func (c *client) retry(ctx context.Context, op backoff.Operation) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.interval
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, requestRetries), ctx))
}

func (c *client) Download(ctx context.Context, url string, path string, header http.Header) error {
	fmt.Printf("Downloading %v...\n", url)

	return c.retry(ctx, func() error {
		req, err := grab.NewRequest(path, url)
		if err != nil {
			return backoff.Permanent(err)
		}
		req = req.WithContext(ctx)
		for key, values := range header {
			for _, value := range values {
				req.HTTPRequest.Header.Add(key, value)
			}
		}

		resp := c.grab.Do(req)

		t := time.NewTicker(1 * time.Second)
		defer t.Stop()

	Loop:
		for {
			select {
			case <-t.C:
				fmt.Printf("  transferred %v / %v bytes (%.2f%%)\n",
					resp.BytesComplete(),
					resp.Size(),
					100*resp.Progress())

			case <-resp.Done:
				break Loop
			}
		}

		err = resp.Err()
		if err == nil {
			return nil
		}

		var status grab.StatusCodeError
		if errors.As(err, &status) {
			if int(status) == http.StatusNotFound {
				return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
			}
			if int(status) < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
		}
		return err
	})
}

func (c *client) GetJSON(ctx context.Context, url string, header http.Header, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, url, header, nil, out)
}

func (c *client) PostJSON(ctx context.Context, url string, header http.Header, body interface{}, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, url, header, body, out)
}

func (c *client) Probe(ctx context.Context, url string, header http.Header) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	// Any status counts: the probe asks whether the backend answers, not
	// whether it is healthy.
	return true
}

func (c *client) doJSON(ctx context.Context, method string, url string, header http.Header, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request body for %s: %w", url, err)
		}
	}

	return c.retry(ctx, func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		for key, values := range header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("request to %s failed: %s", url, resp.Status)
		case resp.StatusCode >= http.StatusBadRequest:
			return backoff.Permanent(fmt.Errorf("request to %s failed: %s", url, resp.Status))
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response from %s: %w", url, err))
		}
		return nil
	})
}
