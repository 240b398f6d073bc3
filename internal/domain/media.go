package domain

import "context"

// MediaUploader defines the contract with the image host (infrastructure
// port): given raw image bytes it returns a publicly retrievable URL.
type MediaUploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}
