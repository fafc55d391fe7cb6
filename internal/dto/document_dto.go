package dto

type ProcessVideoRequest struct {
	Url       string `json:"url" validate:"required,url"`
	SessionId string `json:"session_id" validate:"required"`
}

type ProcessPdfRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Filename  string `json:"filename"`
	// Base64Data is the PDF file encoded as base64, optionally carrying a
	// data-URL prefix ("data:application/pdf;base64,...").
	Base64Data string `json:"base64_data" validate:"required"`
}

type ProcessDocumentResponse struct {
	SessionId  string `json:"session_id"`
	ChunkCount int    `json:"chunk_count"`
	SourceType string `json:"source_type"`
}
