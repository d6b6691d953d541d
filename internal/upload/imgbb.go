// Package upload forwards staff-uploaded images to the ImgBB hosting API
// and returns the resulting public URL. The service keeps no image bytes of
// its own; the catalog only ever stores URLs.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// DefaultEndpoint is the ImgBB upload API.
const DefaultEndpoint = "https://api.imgbb.com/1/upload"

// ErrNoURL is returned when the image host answered 200 but the response
// carried no usable URL.
var ErrNoURL = errors.New("image host response contained no url")

// Client uploads image files to ImgBB.
type Client struct {
	APIKey   string
	Endpoint string       // defaults to DefaultEndpoint when empty
	HTTP     *http.Client // defaults to a 30s-timeout client when nil
}

// NewClient constructs a Client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey}
}

type imgbbResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// UploadFile reads the image at path and posts it to the host, returning
// the public URL. The file at path is left in place; callers own its
// lifecycle.
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"?key="+url.QueryEscape(c.APIKey), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image host rejected upload: status %d", resp.StatusCode)
	}
	var parsed imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode image host response: %w", err)
	}
	if parsed.Data.URL == "" {
		return "", ErrNoURL
	}
	return parsed.Data.URL, nil
}
