package extractor

import "context"

// TranscriptExtractor turns a video URL into plain text ready for chunking.
type TranscriptExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// PDFExtractor turns raw PDF bytes into plain text ready for chunking.
type PDFExtractor interface {
	Extract(data []byte) (string, error)
}
