package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConsolePublisherOutput(t *testing.T) {
	var buf bytes.Buffer
	publisher := NewConsolePublisher(&buf)

	draft := Draft{
		Text:             "A new release is available from Hon Nicola Willis.",
		EmbedTitle:       "Budget delivers for families",
		EmbedDescription: "The Government has announced new support.",
		URL:              "https://www.beehive.govt.nz/release/budget",
	}

	if err := publisher.Publish(context.Background(), draft); err != nil {
		t.Fatalf("Console publish should never fail, got: %v", err)
	}

	expected := "A new release is available from Hon Nicola Willis.\n" +
		"----\n" +
		"Budget delivers for families\n" +
		"The Government has announced new support.\n" +
		"https://www.beehive.govt.nz/release/budget\n" +
		"----\n"
	if buf.String() != expected {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}

func TestClientPublisherLogsInAndUploadsThumbnailOnce(t *testing.T) {
	loginCount := 0
	uploadCount := 0
	postCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/xrpc/com.atproto.server.createSession":
			loginCount++
			json.NewEncoder(w).Encode(sessionResponse{AccessJwt: "test-jwt", DID: "did:plc:abc123"})
		case "/xrpc/com.atproto.repo.uploadBlob":
			uploadCount++
			json.NewEncoder(w).Encode(uploadBlobResponse{Blob: Blob{Type: "blob", Ref: BlobRef{Link: "bafyblob"}}})
		case "/xrpc/com.atproto.repo.createRecord":
			postCount++
			var req createRecordRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Record.Embed == nil || req.Record.Embed.External.Thumb == nil {
				t.Error("Expected embed with thumbnail on record")
			}
			json.NewEncoder(w).Encode(createRecordResponse{URI: "at://x"})
		}
	}))
	defer server.Close()

	publisher := NewClientPublisher(NewClient(server.URL, nil),
		"example.bsky.social", "app-password", []byte("png-bytes"))

	draft := Draft{Text: "A new release is available.", EmbedTitle: "t", EmbedDescription: "d", URL: "https://example.com"}
	if err := publisher.Publish(context.Background(), draft); err != nil {
		t.Fatal(err)
	}
	if err := publisher.Publish(context.Background(), draft); err != nil {
		t.Fatal(err)
	}

	if loginCount != 1 {
		t.Errorf("Expected a single login, got %d", loginCount)
	}
	if uploadCount != 1 {
		t.Errorf("Expected a single thumbnail upload, got %d", uploadCount)
	}
	if postCount != 2 {
		t.Errorf("Expected 2 posts, got %d", postCount)
	}
}

func TestClientPublisherSurfacesRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/xrpc/com.atproto.server.createSession":
			json.NewEncoder(w).Encode(sessionResponse{AccessJwt: "test-jwt", DID: "did:plc:abc123"})
		case "/xrpc/com.atproto.repo.createRecord":
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(xrpcErrorResponse{Error: "InvalidRequest", Message: "record rejected"})
		}
	}))
	defer server.Close()

	publisher := NewClientPublisher(NewClient(server.URL, nil),
		"example.bsky.social", "app-password", nil)

	draft := Draft{Text: "A new release is available.", URL: "https://example.com"}
	if err := publisher.Publish(context.Background(), draft); err == nil {
		t.Error("Expected error when the sink rejects the post")
	}
}
