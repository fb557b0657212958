package slots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rohitvarshney-web/schengen-slots/internal/config"
	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

const (
	maxBodyBytes = 4 << 20
	userAgent    = "schengen-slots/1"
)

// Client talks to the third-party travel API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	query      config.APIConfig
}

// NewClient builds a client from the api section of the config.
func NewClient(cfg config.APIConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		query:      cfg,
	}
}

// Countries fetches and normalizes the destination list.
func (c *Client) Countries(ctx context.Context) ([]model.Country, error) {
	params := url.Values{}
	params.Set("citizenship", c.query.Citizenship)
	params.Set("residence", c.query.Residence)
	params.Set("pincode", c.query.Pincode)
	params.Set("isEnterprise", strconv.FormatBool(c.query.Enterprise))

	body, err := c.get(ctx, "/countries", params)
	if err != nil {
		return nil, err
	}
	return ParseCountries(body)
}

// Slots fetches and normalizes availability for one destination.
func (c *Client) Slots(ctx context.Context, code string) (model.Summary, error) {
	params := url.Values{}
	params.Set("residence", c.query.Residence)
	params.Set("citizenship", c.query.Citizenship)
	params.Set("purpose", c.query.Purpose)
	params.Set("travellersCount", strconv.Itoa(c.query.Travellers))
	params.Set("withAllSlots", strconv.FormatBool(c.query.WithAllSlots))
	params.Set("getCitiesWiseSlots", strconv.FormatBool(c.query.CitiesWise))

	body, err := c.get(ctx, "/application/slots/"+url.PathEscape(model.NormalizeCode(code)), params)
	if err != nil {
		return model.Summary{}, err
	}
	return ParseSlots(code, body)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"path":       path,
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("upstream response")

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	return body, nil
}
