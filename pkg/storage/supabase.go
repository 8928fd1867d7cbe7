package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// attachmentPrefix is the folder inside the bucket where scanned email
// attachments live, keeping them apart from user-uploaded documents.
const attachmentPrefix = "email_attachments"

// signedURLExpiry is how long generated download links stay valid, in seconds.
const signedURLExpiry = 1200

// SupabaseStore is a Supabase Storage client. It implements
// domain.AttachmentStore.
type SupabaseStore struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseStore creates a new Supabase Storage client
func NewSupabaseStore(baseURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores an attachment blob and returns a signed download URL. An
// object that already exists under the same name is overwritten.
func (s *SupabaseStore) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read attachment data: %w", err)
	}

	objectPath := attachmentPrefix + "/" + name
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)

	status, body, err := s.send(ctx, "POST", uploadURL, "application/octet-stream", data)
	if err != nil {
		return "", err
	}
	if status == http.StatusConflict || status == http.StatusBadRequest {
		// Object already exists; overwrite it
		log.Printf("[Storage] Object %s exists, overwriting", objectPath)
		status, body, err = s.send(ctx, "PUT", uploadURL, "application/octet-stream", data)
		if err != nil {
			return "", err
		}
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("supabase upload error (%d): %s", status, string(body))
	}

	return s.signURL(ctx, objectPath)
}

// Delete removes an attachment blob by name.
func (s *SupabaseStore) Delete(ctx context.Context, name string) error {
	objectPath := attachmentPrefix + "/" + name
	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)

	status, body, err := s.send(ctx, "DELETE", deleteURL, "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("supabase delete error (%d): %s", status, string(body))
	}
	return nil
}

// signURL creates a time-limited download URL for an object.
func (s *SupabaseStore) signURL(ctx context.Context, objectPath string) (string, error) {
	signURL := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, s.bucket, objectPath)

	payload, err := json.Marshal(map[string]int{"expiresIn": signedURLExpiry})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	status, body, err := s.send(ctx, "POST", signURL, "application/json", payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("supabase sign error (%d): %s", status, string(body))
	}

	var result struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse sign response: %w", err)
	}
	if result.SignedURL == "" {
		return "", fmt.Errorf("supabase returned empty signed URL")
	}

	return s.baseURL + "/storage/v1" + result.SignedURL, nil
}

func (s *SupabaseStore) send(ctx context.Context, method, url, contentType string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
