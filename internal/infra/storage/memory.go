package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sort"
	"sync"

	"github.com/yanqian/weatherly/internal/domain/archive"
)

// MemoryStore keeps blobs in memory. Useful for tests and dry runs.
type MemoryStore struct {
	mu      sync.RWMutex
	bucket  string
	created bool
	blobs   map[string]StoredBlob
}

// StoredBlob is an object held by MemoryStore.
type StoredBlob struct {
	Data     []byte
	MimeType string
	Metadata map[string]string
	ETag     string
}

// NewMemoryStore constructs storage.
func NewMemoryStore(bucket string) *MemoryStore {
	return &MemoryStore{bucket: bucket, blobs: make(map[string]StoredBlob)}
}

// Bucket returns the bucket name.
func (s *MemoryStore) Bucket() string {
	return s.bucket
}

// EnsureBucket reports creation only on the first call.
func (s *MemoryStore) EnsureBucket(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.created {
		return false, nil
	}
	s.created = true
	return true, nil
}

// Put stores the blob and returns metadata.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, mimeType string, metadata map[string]string) (archive.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := md5.Sum(data)
	etag := hex.EncodeToString(hash[:])
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[key] = StoredBlob{Data: buf, MimeType: mimeType, Metadata: metadata, ETag: etag}
	return archive.StoredObject{
		Key:      key,
		Size:     int64(len(data)),
		MimeType: mimeType,
		ETag:     etag,
	}, nil
}

// Get returns a stored blob.
func (s *MemoryStore) Get(key string) (StoredBlob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	return blob, ok
}

// Keys lists stored keys in lexical order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ archive.ObjectStorage = (*MemoryStore)(nil)
