package dto

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Message   string     `json:"message" validate:"required"`
	SessionId string     `json:"session_id" validate:"required"`
	History   []ChatTurn `json:"history" validate:"omitempty,dive"`
}

// StreamToken is one server-sent event in the chat stream. Exactly one of
// Token or Error is set per event.
type StreamToken struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}
