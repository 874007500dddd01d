package storage

import "errors"

// Buckets used by the application.
const (
	BucketAvatars     = "avatars"
	BucketBackgrounds = "backgrounds"
	BucketHeadshots   = "headshots"
	BucketDocuments   = "documents"
)

var (
	ErrObjectExists = errors.New("object already exists")
	ErrInvalidPath  = errors.New("invalid object path")
)

// Store is the object storage surface: bucket/path uploads with optional
// upsert, public URL mapping, and prefix removal for user purges.
type Store interface {
	Upload(bucket, path string, data []byte, upsert bool) (string, error)
	PublicURL(bucket, path string) string
	RemovePrefix(bucket, prefix string) error
}
