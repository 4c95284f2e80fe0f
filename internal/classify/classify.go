// Package classify is a thin client for the external zero-shot
// classification service. The service picks the best match out of a
// caller-supplied candidate list, either for a text snippet or an image;
// its internals are not this package's business.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client talks to the classifier service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the classifier service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type labelResponse struct {
	Label string `json:"label"`
}

// ClassifyText returns the candidate label best matching the text.
func (c *Client) ClassifyText(ctx context.Context, text string, labels []string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"text":             text,
		"candidate_labels": labels,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify-text", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// ClassifyImage returns the candidate label best matching the image.
func (c *Client) ClassifyImage(ctx context.Context, image []byte, labels []string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "item.jpg")
	if err != nil {
		return "", fmt.Errorf("building form: %w", err)
	}
	if _, err := fw.Write(image); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	if err := mw.WriteField("candidate_labels", strings.Join(labels, ",")); err != nil {
		return "", fmt.Errorf("writing labels: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify-image", &buf)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) (string, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("classifier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding classifier response: %w", err)
	}
	if result.Label == "" {
		return "", fmt.Errorf("classifier returned no label")
	}
	return result.Label, nil
}
