package memory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"cloud-events-sync/internal/domain/events"
)

// recordRepo guarda records en orden de inserción; QueryAll respeta ese orden.
type recordRepo struct {
	mu       sync.RWMutex
	byHandle map[string]events.Record
	byName   map[string]string // name -> handle
	order    []string          // handles
	seq      int
}

func NewRecordRepo() events.RecordStore {
	return &recordRepo{
		byHandle: make(map[string]events.Record),
		byName:   make(map[string]string),
	}
}

func (r *recordRepo) Insert(ctx context.Context, rec events.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.Name) == "" {
		return errors.New("record name required")
	}
	if _, exists := r.byName[rec.Name]; exists {
		return events.ErrDuplicateIdentifier
	}

	r.seq++
	handle := "rec-" + strconv.Itoa(r.seq)
	rec.Handle = handle
	rec.Fields = copyFields(rec.Fields)

	r.byHandle[handle] = rec
	r.byName[rec.Name] = handle
	r.order = append(r.order, handle)
	return nil
}

func (r *recordRepo) QueryAll(ctx context.Context, kind string) ([]events.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Record, 0, len(r.order))
	for _, h := range r.order {
		rec := r.byHandle[h]
		if rec.Kind != kind {
			continue
		}
		rec.Fields = copyFields(rec.Fields)
		out = append(out, rec)
	}
	return out, nil
}

func (r *recordRepo) Lookup(ctx context.Context, name string) (events.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byName[name]
	if !ok {
		return events.Record{}, events.ErrRecordNotFound
	}
	rec := r.byHandle[h]
	rec.Fields = copyFields(rec.Fields)
	return rec, nil
}

func (r *recordRepo) ReplaceFields(ctx context.Context, handle string, fields map[string]events.FieldValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byHandle[handle]
	if !ok {
		return events.ErrRecordNotFound
	}
	rec.Fields = copyFields(fields)
	r.byHandle[handle] = rec
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byHandle[handle]
	if !ok {
		return events.ErrRecordNotFound
	}
	delete(r.byHandle, handle)
	delete(r.byName, rec.Name)

	for i, h := range r.order {
		if h == handle {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyFields(in map[string]events.FieldValue) map[string]events.FieldValue {
	out := make(map[string]events.FieldValue, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
