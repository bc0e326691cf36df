package archive

import "context"

// ObjectStorage abstracts the bucket holding archived API responses (S3, MinIO, memory).
type ObjectStorage interface {
	// EnsureBucket creates the bucket when missing and reports whether it did.
	EnsureBucket(ctx context.Context) (created bool, err error)
	Put(ctx context.Context, key string, data []byte, mimeType string, metadata map[string]string) (StoredObject, error)
	Bucket() string
}

// StoredObject captures persisted blob metadata.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}

// Kind names the archived data set and prefixes its keys.
type Kind string

const (
	KindWeather  Kind = "weather"
	KindForecast Kind = "forecast"
)

// RunID identifies one dashboard run; it is attached to every archived object.
type RunID string
