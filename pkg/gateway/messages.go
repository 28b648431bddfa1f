package gateway

// Client to server. Op is "subscribe" or "unsubscribe".
type ClientMessage struct {
	Op      string `json:"op"`
	ChunkID string `json:"chunkId"`
}

// Server to client. Type is "added" or "removed". Removals carry the
// removed record so the client can still place the delete label when it
// never mirrored the object, plus the username the placed-by index still
// resolves for the key.
type ServerMessage struct {
	Type     string `json:"type"`
	ChunkID  string `json:"chunkId"`
	Key      string `json:"key"`
	Record   string `json:"record,omitempty"`
	Username string `json:"username,omitempty"`
}

const (
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"

	TypeAdded   = "added"
	TypeRemoved = "removed"
)
