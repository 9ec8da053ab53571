package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud-events-sync/internal/domain/events"
)

type fakeRow struct {
	handle int64
	kind   string
	name   string
	raw    []byte
}

func (f fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = f.handle
	*(dest[1].(*string)) = f.kind
	*(dest[2].(*string)) = f.name
	*(dest[3].(*[]byte)) = f.raw
	return nil
}

func TestScanRecord_DecodesTypedFields(t *testing.T) {
	rec, err := scanRecord(fakeRow{
		handle: 42,
		kind:   events.RecordKind,
		name:   "e-1",
		raw:    []byte(`{"title":{"type":"STRING","value":"Concert"},"date":{"type":"TIMESTAMP","value":"2024-06-01T20:30:00.123456789Z"}}`),
	})
	if err != nil {
		t.Fatalf("scanRecord: %v", err)
	}
	if rec.Handle != "42" || rec.Name != "e-1" {
		t.Fatalf("unexpected record %#v", rec)
	}
	if rec.Fields["title"].Str != "Concert" {
		t.Fatalf("expected title Concert, got %#v", rec.Fields["title"])
	}
	want := time.Date(2024, 6, 1, 20, 30, 0, 123456789, time.UTC)
	if !rec.Fields["date"].Time.Equal(want) {
		t.Fatalf("expected nanosecond date, got %s", rec.Fields["date"].Time)
	}
}

func TestScanRecord_NonObjectFieldsYieldEmptyMap(t *testing.T) {
	rec, err := scanRecord(fakeRow{handle: 1, kind: events.RecordKind, name: "x", raw: []byte(`[1,2]`)})
	if err != nil {
		t.Fatalf("scanRecord: %v", err)
	}
	if _, ok := events.DecodeEvent(rec); ok {
		t.Fatalf("expected record to be undecodable")
	}
}

// Integración: requiere TEST_DB_DSN apuntando a un Postgres desechable.
func TestRecordsRepo_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE cloud_records`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	repo := NewRecordsRepo(db)
	store := events.NewStore(events.StoreConfig{ContainerID: "test"}, repo)

	e := events.Event{ID: "pg-1", Title: "T", Venue: "V", Description: "D", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, e); !errors.Is(err, events.ErrDuplicateIdentifier) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	e.Venue = "New Venue"
	if err := store.Update(ctx, e); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 1 || got[0].Venue != "New Venue" {
		t.Fatalf("unexpected fetch %#v", got)
	}

	if err := store.Delete(ctx, e); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, e); !errors.Is(err, events.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
