// Package backend talks to the remote hostel API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/config"
	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

const maxBody = 8 << 20

type Client struct {
	http    *http.Client
	timeout time.Duration
	retries int
	delay   time.Duration
	log     *logrus.Entry
}

func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		http:    &http.Client{},
		timeout: cfg.RequestTimeout,
		retries: cfg.RetryAttempts,
		delay:   cfg.RetryDelay,
		log:     log.WithField("component", "backend"),
	}
}

// PostMultipart sends the submission as one multipart request. It is never retried.
func (c *Client) PostMultipart(ctx context.Context, url string, sub *models.FormSubmission) (*Envelope, error) {
	body, contentType, err := encodeMultipart(sub)
	if err != nil {
		return nil, fmt.Errorf("encode multipart: %w", err)
	}
	return c.post(ctx, url, contentType, body)
}

// PostJSON sends v as a JSON body. It is never retried.
func (c *Client) PostJSON(ctx context.Context, url string, v any) (*Envelope, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return c.post(ctx, url, "application/json", bytes.NewReader(payload))
}

func (c *Client) post(ctx context.Context, url, contentType string, body io.Reader) (*Envelope, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	status, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	env := decodeEnvelope(raw)
	if status < 200 || status > 299 {
		return env, &HTTPError{URL: url, Status: status, Message: env.Message}
	}
	return env, nil
}

// GetList fetches a list resource, retrying transport failures and 5xx with exponential backoff.
func (c *Client) GetList(ctx context.Context, url string) ([]models.ListItem, error) {
	var items []models.ListItem
	op := func() error {
		reqCtx, cancel := c.withTimeout(ctx)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		status, raw, err := c.do(req)
		if err != nil {
			return err
		}
		if status < 200 || status > 299 {
			herr := &HTTPError{URL: url, Status: status, Message: decodeEnvelope(raw).Message}
			if status >= 500 {
				return herr
			}
			return backoff.Permanent(herr)
		}
		items, err = decodeList(raw)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.delay
	maxRetries := 0
	if c.retries > 1 {
		maxRetries = c.retries - 1
	}
	policy := backoff.WithMaxRetries(b, uint64(maxRetries))

	notify := func(err error, wait time.Duration) {
		c.log.WithError(err).WithField("retry_in", wait).Warn("list fetch failed, retrying")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, &NetworkError{URL: req.URL.String(), Err: err}
	}
	c.log.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"status": resp.StatusCode,
	}).Debug("backend call")
	return resp.StatusCode, raw, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(sub *models.FormSubmission) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range sub.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range sub.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Name)))
		ct := f.Type
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
