// Package imagehost uploads image blobs to an external hosting service and
// returns public URLs. The core only consumes the returned URL to populate a
// record's photo link; no image processing happens here.
package imagehost

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.imgbb.com"

// uploadResponse is the subset of the imgbb response the client reads.
type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Client uploads images to imgbb.
type Client struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClient creates an imgbb client with the given API key.
func NewClient(apiKey string) *Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		apiKey:     apiKey,
	}
}

// Upload sends an image blob to the hosting service and returns its public
// URL.
func (c *Client) Upload(image []byte) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("image host API key is not configured")
	}
	if len(image) == 0 {
		return "", fmt.Errorf("image payload is empty")
	}

	var out uploadResponse
	resp, err := c.httpClient.R().
		SetFormData(map[string]string{
			"key":   c.apiKey,
			"image": base64.StdEncoding.EncodeToString(image),
		}).
		SetResult(&out).
		Post("/1/upload")
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if resp.IsError() || !out.Success {
		return "", fmt.Errorf("image host rejected upload: status %d", resp.StatusCode())
	}
	if out.Data.URL == "" {
		return "", fmt.Errorf("image host returned no URL")
	}

	return out.Data.URL, nil
}
