package events

// Session activity actions published on the in-process bus.
const (
	ActionIngested = "ingested"
	ActionPurged   = "purged"
)

// SessionActivity is emitted whenever a session's document set changes.
// Consumers use it for decoupled side effects (activity logging today)
// without coupling the ingestion write path to them.
type SessionActivity struct {
	SessionId  string `json:"session_id"`
	Action     string `json:"action"`
	SourceType string `json:"source_type,omitempty"`
	ChunkCount int    `json:"chunk_count,omitempty"`
}
