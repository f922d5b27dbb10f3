// Package ocr wraps the external OCR service. The service is a black box:
// it takes image bytes and answers with markdown-like text. Any failure
// here is fatal for the request: there is no text to parse without it.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable signals the OCR service could not be reached.
var ErrUnavailable = errors.New("ocr service unavailable")

// ErrRejected signals the OCR service answered but produced no usable text.
var ErrRejected = errors.New("ocr service rejected the image")

// Client posts images to a MinerU-compatible /file_parse endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// ExtractText uploads the image and returns the markdown content of the
// first parse result.
func (c *Client) ExtractText(ctx context.Context, filename string, image []byte) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("%w: no base url configured", ErrUnavailable)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}
	if _, err := fw.Write(image); err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build multipart: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/file_parse"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed struct {
		Results map[string]struct {
			MDContent *string `json:"md_content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrRejected, err)
	}
	for _, r := range parsed.Results {
		if r.MDContent != nil {
			return *r.MDContent, nil
		}
	}
	return "", fmt.Errorf("%w: no md_content in response", ErrRejected)
}
