package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/weatherly/pkg/errors"
	"github.com/yanqian/weatherly/pkg/util"
)

// TimestampLayout formats the write time injected into records and keys.
const TimestampLayout = "20060102-150405"

const contentTypeJSON = "application/json"

// ErrEmptyRecord is returned when there is nothing to archive. Storage is not contacted.
var ErrEmptyRecord = apperrors.Wrap(apperrors.CodeEmptyRecord, "archive record is empty", nil)

// Writer stores raw API responses under deterministic keys.
type Writer struct {
	store  ObjectStorage
	runID  RunID
	logger *slog.Logger
	now    func() time.Time
}

// NewWriter wires the archive writer.
func NewWriter(store ObjectStorage, runID RunID, logger *slog.Logger) *Writer {
	return &Writer{
		store:  store,
		runID:  runID,
		logger: logger.With("component", "archive.writer"),
		now:    util.Now,
	}
}

// Key builds "{kind}-data/{location}-{YYYYMMDD-HHMMSS}.json".
func Key(kind Kind, location string, at time.Time) string {
	return fmt.Sprintf("%s-data/%s-%s.json", kind, location, at.Format(TimestampLayout))
}

// Bucket returns the configured container name.
func (w *Writer) Bucket() string {
	return w.store.Bucket()
}

// EnsureContainer performs the one-time check-and-create of the bucket.
func (w *Writer) EnsureContainer(ctx context.Context) (bool, error) {
	created, err := w.store.EnsureBucket(ctx)
	if err != nil {
		return false, apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("ensure bucket %s", w.store.Bucket()), err)
	}
	return created, nil
}

// Store injects the write timestamp into record and uploads it as JSON.
func (w *Writer) Store(ctx context.Context, record []byte, location string, kind Kind) (StoredObject, error) {
	if isEmptyRecord(record) {
		return StoredObject{}, ErrEmptyRecord
	}

	at := w.now()
	stamp := at.Format(TimestampLayout)
	body, err := injectTimestamp(record, stamp)
	if err != nil {
		return StoredObject{}, apperrors.Wrap(apperrors.CodeInvalidRecord, "archive record is not a JSON object", err)
	}

	key := Key(kind, location, at)
	metadata := map[string]string{"run-id": string(w.runID)}
	obj, err := w.store.Put(ctx, key, body, contentTypeJSON, metadata)
	if err != nil {
		return StoredObject{}, apperrors.Wrap(apperrors.CodeStorage, fmt.Sprintf("put object %s", key), err)
	}
	w.logger.Info("archive record stored", "key", key, "bytes", len(body), "kind", string(kind))
	return obj, nil
}

func isEmptyRecord(record []byte) bool {
	trimmed := bytes.TrimSpace(record)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}

func injectTimestamp(record []byte, stamp string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(record))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("record decoded to null")
	}
	doc["timestamp"] = stamp

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
