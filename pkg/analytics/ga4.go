package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/logger"

	"github.com/google/uuid"
)

const collectEndpoint = "https://www.google-analytics.com/mp/collect"

// Client sends GA4 Measurement Protocol events. A zero-configured client
// silently drops events so callers never need to branch.
type Client struct {
	measurementID string
	apiSecret     string
	environment   string
	httpClient    *http.Client
}

type event struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params"`
}

type payload struct {
	ClientID string  `json:"client_id"`
	Events   []event `json:"events"`
}

// NewClient builds a client from config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		measurementID: cfg.GA4.MeasurementID,
		apiSecret:     cfg.GA4.APISecret,
		environment:   cfg.GA4.Environment,
		httpClient:    &http.Client{Timeout: 3 * time.Second},
	}
}

// Enabled reports whether credentials are configured.
func (c *Client) Enabled() bool {
	return c.measurementID != "" && c.apiSecret != ""
}

// SendEvent fires a server event. Best effort: failures are logged, never returned up.
func (c *Client) SendEvent(eventName string, params map[string]interface{}) bool {
	if !c.Enabled() {
		return false
	}

	safeName := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(eventName)), "-", "_")
	if safeName == "" {
		return false
	}

	eventParams := make(map[string]interface{}, len(params)+2)
	for k, v := range params {
		eventParams[k] = v
	}
	if _, ok := eventParams["engagement_time_msec"]; !ok {
		eventParams["engagement_time_msec"] = 100
	}
	if _, ok := eventParams["environment"]; !ok {
		eventParams["environment"] = c.environment
	}

	body, err := json.Marshal(payload{
		ClientID: fmt.Sprintf("server-%s", uuid.NewString()),
		Events:   []event{{Name: safeName, Params: eventParams}},
	})
	if err != nil {
		return false
	}

	query := url.Values{}
	query.Set("measurement_id", c.measurementID)
	query.Set("api_secret", c.apiSecret)

	resp, err := c.httpClient.Post(collectEndpoint+"?"+query.Encode(), "application/json", bytes.NewReader(body))
	if err != nil {
		logger.GetLogger().Warnf("GA4 event send failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 300
}
