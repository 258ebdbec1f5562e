package bluesky

// XRPC wire types, field names per the com.atproto / app.bsky lexicons.

type sessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type sessionResponse struct {
	AccessJwt string `json:"accessJwt"`
	DID       string `json:"did"`
	Handle    string `json:"handle"`
}

// Blob is a reference to uploaded binary data, returned by uploadBlob and
// passed back verbatim when embedding.
type Blob struct {
	Type     string  `json:"$type"`
	Ref      BlobRef `json:"ref"`
	MimeType string  `json:"mimeType"`
	Size     int64   `json:"size"`
}

type BlobRef struct {
	Link string `json:"$link"`
}

type uploadBlobResponse struct {
	Blob Blob `json:"blob"`
}

// ExternalEmbed is the link-preview bundle attached to a post.
type ExternalEmbed struct {
	URI         string
	Title       string
	Description string
	Thumb       *Blob
}

type postRecord struct {
	Type      string         `json:"$type"`
	Text      string         `json:"text"`
	CreatedAt string         `json:"createdAt"`
	Embed     *embedExternal `json:"embed,omitempty"`
}

type embedExternal struct {
	Type     string          `json:"$type"`
	External externalPayload `json:"external"`
}

type externalPayload struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumb       *Blob  `json:"thumb,omitempty"`
}

type createRecordRequest struct {
	Repo       string     `json:"repo"`
	Collection string     `json:"collection"`
	Record     postRecord `json:"record"`
}

type createRecordResponse struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type xrpcErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
