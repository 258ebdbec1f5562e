package bluesky

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Draft is a fully composed post ready for the sink.
type Draft struct {
	Text             string
	EmbedTitle       string
	EmbedDescription string
	URL              string
}

// Publisher delivers a draft to its destination. A returned error means
// the draft was not delivered and may be retried on a later run.
type Publisher interface {
	Publish(ctx context.Context, draft Draft) error
}

// ConsolePublisher prints drafts instead of sending them. This is the
// default mode so resolved content can be inspected before going live.
type ConsolePublisher struct {
	out io.Writer
}

func NewConsolePublisher(out io.Writer) *ConsolePublisher {
	if out == nil {
		out = os.Stdout
	}
	return &ConsolePublisher{out: out}
}

func (p *ConsolePublisher) Publish(_ context.Context, draft Draft) error {
	fmt.Fprintln(p.out, draft.Text)
	fmt.Fprintln(p.out, "----")
	fmt.Fprintln(p.out, draft.EmbedTitle)
	fmt.Fprintln(p.out, draft.EmbedDescription)
	fmt.Fprintln(p.out, draft.URL)
	fmt.Fprintln(p.out, "----")
	return nil
}

// ClientPublisher sends drafts through a Bluesky session. The link-preview
// thumbnail never changes, so the local copy is uploaded once on the first
// publish and the blob reference is reused for the rest of the run.
type ClientPublisher struct {
	client     *Client
	identifier string
	password   string
	thumbData  []byte
	thumb      *Blob
	loggedIn   bool
}

func NewClientPublisher(client *Client, identifier, password string, thumbData []byte) *ClientPublisher {
	return &ClientPublisher{
		client:     client,
		identifier: identifier,
		password:   password,
		thumbData:  thumbData,
	}
}

func (p *ClientPublisher) Publish(ctx context.Context, draft Draft) error {
	if !p.loggedIn {
		if err := p.client.Login(ctx, p.identifier, p.password); err != nil {
			return err
		}
		p.loggedIn = true
	}

	if p.thumb == nil && len(p.thumbData) > 0 {
		blob, err := p.client.UploadBlob(ctx, p.thumbData, "image/png")
		if err != nil {
			return fmt.Errorf("failed to upload thumbnail: %w", err)
		}
		p.thumb = blob
	}

	return p.client.PublishPost(ctx, draft.Text, &ExternalEmbed{
		URI:         draft.URL,
		Title:       draft.EmbedTitle,
		Description: draft.EmbedDescription,
		Thumb:       p.thumb,
	})
}
