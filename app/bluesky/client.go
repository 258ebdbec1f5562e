package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const postCollection = "app.bsky.feed.post"

// Client is a minimal XRPC client for the handful of Bluesky calls the
// publisher needs: createSession, uploadBlob and createRecord.
type Client struct {
	host       string
	httpClient *http.Client
	accessJwt  string
	did        string
}

// NewClient creates a new Bluesky client for the given PDS host
func NewClient(host string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: httpClient,
	}
}

// Login authenticates with an identifier/app-password pair and keeps the
// session token for subsequent calls.
func (c *Client) Login(ctx context.Context, identifier, password string) error {
	var session sessionResponse
	err := c.postJSON(ctx, "com.atproto.server.createSession",
		sessionRequest{Identifier: identifier, Password: password}, &session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	c.accessJwt = session.AccessJwt
	c.did = session.DID

	slog.Debug("Bluesky session created", "handle", session.Handle, "did", session.DID)

	return nil
}

// UploadBlob uploads raw bytes and returns the blob reference to embed.
func (c *Client) UploadBlob(ctx context.Context, data []byte, mimeType string) (*Blob, error) {
	if c.accessJwt == "" {
		return nil, fmt.Errorf("not authenticated, call Login first")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.xrpcURL("com.atproto.repo.uploadBlob"), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", "Bearer "+c.accessJwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload blob: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, "com.atproto.repo.uploadBlob"); err != nil {
		return nil, err
	}

	var uploaded uploadBlobResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return &uploaded.Blob, nil
}

// PublishPost creates an app.bsky.feed.post record with an optional
// external (link preview) embed.
func (c *Client) PublishPost(ctx context.Context, text string, embed *ExternalEmbed) error {
	if c.accessJwt == "" {
		return fmt.Errorf("not authenticated, call Login first")
	}

	record := postRecord{
		Type:      postCollection,
		Text:      text,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if embed != nil {
		record.Embed = &embedExternal{
			Type: "app.bsky.embed.external",
			External: externalPayload{
				URI:         embed.URI,
				Title:       embed.Title,
				Description: embed.Description,
				Thumb:       embed.Thumb,
			},
		}
	}

	var created createRecordResponse
	err := c.postJSON(ctx, "com.atproto.repo.createRecord", createRecordRequest{
		Repo:       c.did,
		Collection: postCollection,
		Record:     record,
	}, &created)
	if err != nil {
		return fmt.Errorf("failed to create post record: %w", err)
	}

	slog.Debug("Post record created", "uri", created.URI)

	return nil
}

func (c *Client) postJSON(ctx context.Context, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.xrpcURL(method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessJwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessJwt)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp, method); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", method, err)
		}
	}

	return nil
}

func (c *Client) xrpcURL(method string) string {
	return c.host + "/xrpc/" + method
}

func checkResponse(resp *http.Response, method string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	var xrpcErr xrpcErrorResponse
	if err := json.Unmarshal(body, &xrpcErr); err == nil && xrpcErr.Error != "" {
		return fmt.Errorf("%s returned %s: %s", method, xrpcErr.Error, xrpcErr.Message)
	}

	return fmt.Errorf("%s returned HTTP %d", method, resp.StatusCode)
}
