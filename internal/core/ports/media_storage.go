package ports

import "context"

// MediaStorage abstracts the third-party media service: a local file goes in,
// a stored-resource URL comes out, and a URL can later be deleted.
type MediaStorage interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Delete(ctx context.Context, url string) error
}
