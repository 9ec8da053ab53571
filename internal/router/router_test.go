package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mem "cloud-events-sync/internal/adapters/storage/memory"
	"cloud-events-sync/internal/config"
	"cloud-events-sync/internal/domain/events"
	"cloud-events-sync/internal/router"
)

type snapshot struct {
	State struct {
		Phase string `json:"phase"`
		Error string `json:"error"`
	} `json:"state"`
	Events []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Venue string `json:"venue"`
	} `json:"events"`
}

func newServer(t *testing.T, rs events.RecordStore) (*httptest.Server, *events.Controller) {
	t.Helper()
	c := events.NewController(events.NewStore(events.StoreConfig{ContainerID: "test"}, rs), nil)
	return httptest.NewServer(router.NewRouter(router.Options{Controller: c})), c
}

func TestHTTP_EndToEnd_CreateUpdateDelete(t *testing.T) {
	ts, _ := newServer(t, mem.NewRecordRepo())
	defer ts.Close()

	// 1) Crear
	st, body := doReq(t, ts.URL, "POST", "/events", map[string]any{
		"title":       "Concert",
		"venue":       "The Club",
		"description": "Greatest hits",
		"date":        "2024-06-01T00:00:00Z",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &created)
	if created.ID == "" {
		t.Fatalf("create: missing id body=%s", string(body))
	}

	// 2) Actualizar venue
	st, body = doReq(t, ts.URL, "PUT", "/events/"+created.ID, map[string]any{
		"title":       "Concert",
		"venue":       "New Venue",
		"description": "Greatest hits",
		"date":        "2024-06-01T00:00:00Z",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
	}

	snap := getSnapshot(t, ts.URL)
	if len(snap.Events) != 1 || snap.Events[0].ID != created.ID || snap.Events[0].Venue != "New Venue" {
		t.Fatalf("unexpected snapshot after update %#v", snap)
	}

	// 3) Refresh desde el store devuelve lo mismo
	st, body = doReq(t, ts.URL, "POST", "/events/refresh", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 refresh, got %d body=%s", st, string(body))
	}

	// 4) ICS
	st, body = doReq(t, ts.URL, "GET", "/events.ics", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "UID:"+created.ID) {
		t.Fatalf("expected ics with event, got %d body=%s", st, string(body))
	}

	// 5) Borrar
	st, body = doReq(t, ts.URL, "DELETE", "/events/"+created.ID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete, got %d body=%s", st, string(body))
	}
	snap = getSnapshot(t, ts.URL)
	if len(snap.Events) != 0 || snap.State.Phase != "loaded" {
		t.Fatalf("expected empty loaded snapshot, got %#v", snap)
	}
}

func TestHTTP_UpdateMissing_Returns404AndFailedState(t *testing.T) {
	ts, _ := newServer(t, mem.NewRecordRepo())
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "PUT", "/events/ghost", map[string]any{
		"title": "x", "venue": "y", "description": "z", "date": "2024-06-01T00:00:00Z",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}

	snap := getSnapshot(t, ts.URL)
	if snap.State.Phase != "failed" || snap.State.Error == "" {
		t.Fatalf("expected failed state with error, got %#v", snap.State)
	}

	// Descartar el error
	st, _ = doReq(t, ts.URL, "POST", "/state/reset", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 reset, got %d", st)
	}
	if snap := getSnapshot(t, ts.URL); snap.State.Phase != "loaded" {
		t.Fatalf("expected loaded after reset, got %#v", snap.State)
	}
}

func TestHTTP_Create_ValidatesInput(t *testing.T) {
	ts, c := newServer(t, mem.NewRecordRepo())
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/events", map[string]any{
		"title": "", "venue": "y", "description": "z", "date": "2024-06-01T00:00:00Z",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty title, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/events", map[string]any{
		"title": "x", "venue": "y", "description": "z", "date": "June 1st",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", st)
	}

	if c.State().Phase != events.PhaseLoaded {
		t.Fatalf("validation errors must not touch controller state, got %s", c.State())
	}
}

type downStore struct{}

var errDown = errors.New("connection refused")

func (downStore) Insert(context.Context, events.Record) error { return errDown }
func (downStore) QueryAll(context.Context, string) ([]events.Record, error) {
	return nil, errDown
}
func (downStore) Lookup(context.Context, string) (events.Record, error) {
	return events.Record{}, errDown
}
func (downStore) ReplaceFields(context.Context, string, map[string]events.FieldValue) error {
	return errDown
}
func (downStore) Delete(context.Context, string) error { return errDown }

func TestHTTP_StoreDown_Returns503(t *testing.T) {
	ts, _ := newServer(t, downStore{})
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/events/refresh", nil)
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d body=%s", st, string(body))
	}
	var snap snapshot
	_ = json.Unmarshal(body, &snap)
	if snap.State.Phase != "failed" {
		t.Fatalf("expected failed state in body, got %#v", snap.State)
	}
}

func TestNewRecordStore_MemorySeeded(t *testing.T) {
	cfg := config.Default()
	cfg.SeedSampleEvents = true

	rs, closeFn, err := router.NewRecordStore(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewRecordStore: %v", err)
	}
	defer closeFn()

	got, err := events.NewStore(cfg.StoreConfig(), rs).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sample events, got %d", len(got))
	}
}

func getSnapshot(t *testing.T, baseURL string) snapshot {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/events", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 snapshot, got %d body=%s", st, string(body))
	}
	var snap snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("snapshot json: %v body=%s", err, string(body))
	}
	return snap
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
