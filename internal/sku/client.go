package sku

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client calls an external SKU generation service over HTTP. It satisfies
// Generator so the import flow does not care where SKUs come from.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type generateRequest struct {
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Name     string `json:"name"`
}

type generateResponse struct {
	SKU string `json:"sku"`
}

// NewClient creates a new SKU service client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

func (c *Client) Generate(category, brand, name string) (string, error) {
	payload, err := json.Marshal(generateRequest{Category: category, Brand: brand, Name: name})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/sku/generate", c.BaseURL), bytes.NewReader(payload))
	if err != nil {
		c.Logger.Error("Failed to create SKU request", zap.Error(err))
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("SKU request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error("Failed to read SKU response", zap.Error(err))
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("SKU service returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)))
		return "", fmt.Errorf("sku service: %d %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		c.Logger.Error("Failed to parse SKU response", zap.Error(err))
		return "", err
	}

	if genResp.SKU == "" {
		return "", fmt.Errorf("sku service returned empty sku")
	}

	return genResp.SKU, nil
}
