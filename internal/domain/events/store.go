package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StoreConfig identifica el contenedor/base remota. Se construye una vez al inicio
// y es de solo lectura.
type StoreConfig struct {
	ContainerID string
	Environment string // development | production
	Database    string // public | private
	RecordKind  string // default "Event"
}

func (c StoreConfig) kind() string {
	if k := strings.TrimSpace(c.RecordKind); k != "" {
		return k
	}
	return RecordKind
}

// Store traduce Event <-> Record y es el único dueño del contrato CRUD remoto.
// No guarda estado mutable: se puede compartir entre controllers.
type Store struct {
	cfg StoreConfig
	db  RecordStore
}

func NewStore(cfg StoreConfig, db RecordStore) *Store {
	return &Store{cfg: cfg, db: db}
}

func (s *Store) Config() StoreConfig { return s.cfg }

func (s *Store) Create(ctx context.Context, e Event) error {
	r := EncodeEvent(e)
	r.Kind = s.cfg.kind()

	if err := s.db.Insert(ctx, r); err != nil {
		if errors.Is(err, ErrDuplicateIdentifier) {
			return err
		}
		return unavailable(err)
	}
	return nil
}

// FetchAll devuelve los eventos en el orden del store. Records malformados se
// descartan; el resultado es best-effort, no exhaustivo.
func (s *Store) FetchAll(ctx context.Context) ([]Event, error) {
	records, err := s.db.QueryAll(ctx, s.cfg.kind())
	if err != nil {
		return nil, unavailable(err)
	}

	out := make([]Event, 0, len(records))
	for _, r := range records {
		e, ok := DecodeEvent(r)
		if !ok {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Update nunca crea: si no hay record con e.ID devuelve ErrRecordNotFound.
func (s *Store) Update(ctx context.Context, e Event) error {
	existing, err := s.lookup(ctx, e.ID)
	if err != nil {
		return err
	}
	if err := s.db.ReplaceFields(ctx, existing.Handle, encodeFields(e)); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return err
		}
		return unavailable(err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, e Event) error {
	existing, err := s.lookup(ctx, e.ID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(ctx, existing.Handle); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return err
		}
		return unavailable(err)
	}
	return nil
}

func (s *Store) lookup(ctx context.Context, id string) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, ErrRecordNotFound
	}
	r, err := s.db.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, unavailable(err)
	}
	if r.Kind != "" && r.Kind != s.cfg.kind() {
		return Record{}, ErrRecordNotFound
	}
	return r, nil
}

func unavailable(err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
