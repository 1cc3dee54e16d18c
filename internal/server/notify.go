package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultNotifyTimeout bounds one outbound notification.
const DefaultNotifyTimeout = 5 * time.Second

// Notifier forwards a decision to an external party.
type Notifier interface {
	Notify(ctx context.Context, decision string) error
}

// NopNotifier drops every decision.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) error { return nil }

// NotificationError reports a notification the receiver rejected.
type NotificationError struct {
	URL        string
	StatusCode int
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify %s: unexpected status %d", e.URL, e.StatusCode)
}

// HTTPNotifier posts decisions as a form to URL.
type HTTPNotifier struct {
	URL    string
	Client *http.Client
}

// NewHTTPNotifier creates a notifier with a client bounded by timeout.
// A non-positive timeout selects DefaultNotifyTimeout.
func NewHTTPNotifier(target string, timeout time.Duration) *HTTPNotifier {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &HTTPNotifier{
		URL:    target,
		Client: &http.Client{Timeout: timeout},
	}
}

// Notify sends subject=AI Decision&comment=<decision>.
func (n *HTTPNotifier) Notify(ctx context.Context, decision string) error {
	form := url.Values{}
	form.Set("subject", "AI Decision")
	form.Set("comment", decision)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "notify")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultNotifyTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "notify")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &NotificationError{URL: n.URL, StatusCode: resp.StatusCode}
	}
	return nil
}
