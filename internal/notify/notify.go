// Package notify posts task events to a team webhook. Delivery is best
// effort: a failed notification is something to log, never something that
// blocks or fails the operation that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Result is the explicit outcome of a notification attempt. Callers may
// log Err but must not propagate it.
type Result struct {
	OK  bool
	Err error
}

type Notifier interface {
	Notify(ctx context.Context, text string) Result
}

// Noop is the notifier used when no webhook is configured.
type Noop struct{}

func (Noop) Notify(context.Context, string) Result { return Result{OK: true} }

const requestTimeout = 5 * time.Second

// Webhook posts {"content": text} as JSON to a fixed URL.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type payload struct {
	Content string `json:"content"`
}

func (w *Webhook) Notify(ctx context.Context, text string) Result {
	body, err := json.Marshal(payload{Content: text})
	if err != nil {
		return Result{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return Result{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Err: fmt.Errorf("notify: webhook returned %s", resp.Status)}
	}
	return Result{OK: true}
}
