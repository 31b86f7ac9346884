package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"media-dupes/internal/models"
	"media-dupes/internal/net"
	"media-dupes/internal/utils/logging"
)

const applicationJSON = "application/json"

// Webhook posts terminal batch reports as JSON to user configured URLs.
type Webhook struct {
	Nop
	URLs      []string
	regClient *http.Client
	lanClient *http.Client
	wg        sync.WaitGroup
}

// NewWebhook returns a webhook sink for the given URLs.
//
// Hosts on the local network get a client that skips TLS verification (self-signed home servers).
func NewWebhook(urls []string) *Webhook {
	return &Webhook{
		URLs:      urls,
		regClient: &http.Client{Timeout: 10 * time.Second},
		lanClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// BatchFinished implements Sink. The report is posted in the background, see Wait.
func (w *Webhook) BatchFinished(r models.Report) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.Send(context.Background(), r); err != nil {
			logging.E("Webhook notification failed: %v", err)
		}
	}()
}

// Wait blocks until every report handed to BatchFinished has been posted or has failed.
func (w *Webhook) Wait() {
	w.wg.Wait()
}

// Send posts the report to every configured URL and joins the errors.
func (w *Webhook) Send(ctx context.Context, r models.Report) error {
	if len(w.URLs) == 0 {
		logging.D(1, "No notification URLs configured")
		return nil
	}

	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report for batch %q: %w", r.BatchID, err)
	}

	errs := make([]error, 0, len(w.URLs))
	for _, notifyURL := range w.URLs {
		logging.I("Notifying %q", notifyURL)
		parsed, err := url.Parse(notifyURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid notification URL %q: %w", notifyURL, err))
			continue
		}

		client := w.regClient
		if net.IsPrivateNetwork(parsed.Host) {
			client = w.lanClient
		}

		if err := post(ctx, client, notifyURL, body); err != nil {
			errs = append(errs, fmt.Errorf("failed to notify URL %q: %w", notifyURL, err))
			continue
		}
		logging.S("Successfully notified URL %q for batch %q", notifyURL, r.BatchID)
	}
	return errors.Join(errs...)
}

func post(ctx context.Context, client *http.Client, notifyURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, notifyURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", applicationJSON)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("Failed to close HTTP response body: %v", err)
		}
	}()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification failed with status %d", resp.StatusCode)
	}
	return nil
}
