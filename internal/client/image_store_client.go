package client

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"autohaus-service/internal/config"
)

// UploadResult is the stored image reference returned by the image host.
type UploadResult struct {
	URL       string `json:"url"`
	StorageID string `json:"storageId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ImageStoreClient talks to the Cloudinary upload API over plain HTTP.
type ImageStoreClient struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	baseURL    string
	httpClient *http.Client
}

func NewImageStoreClient(cfg *config.Config) *ImageStoreClient {
	return &ImageStoreClient{
		cloudName: cfg.ImageStore.CloudName,
		apiKey:    cfg.ImageStore.APIKey,
		apiSecret: cfg.ImageStore.APISecret,
		folder:    cfg.ImageStore.Folder,
		baseURL:   "https://api.cloudinary.com/v1_1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether upload credentials are present. Upload endpoints
// refuse requests when they are not.
func (c *ImageStoreClient) Configured() bool {
	return c.cloudName != "" && c.apiKey != "" && c.apiSecret != ""
}

// Upload sends one image and returns its public URL and storage id.
func (c *ImageStoreClient) Upload(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("image store is not configured")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"folder":    c.folder,
		"timestamp": timestamp,
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute upload request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image store returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}

	return &UploadResult{
		URL:       parsed.SecureURL,
		StorageID: parsed.PublicID,
		Width:     parsed.Width,
		Height:    parsed.Height,
	}, nil
}

// Delete removes a previously uploaded image by its storage id.
func (c *ImageStoreClient) Delete(ctx context.Context, storageID string) error {
	if !c.Configured() {
		return fmt.Errorf("image store is not configured")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": storageID,
		"timestamp": timestamp,
	}

	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(params))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute delete request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read delete response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image store returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse delete response: %w", err)
	}
	if parsed.Result != "ok" {
		return fmt.Errorf("image store delete failed: %s", parsed.Result)
	}

	return nil
}

// sign produces the API signature: parameters sorted by name, joined as a
// query string, secret appended, SHA-1 hex digest.
func (c *ImageStoreClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(digest[:])
}
