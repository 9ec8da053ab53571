package events

import (
	"context"
	"errors"
)

var (
	// ErrStoreUnavailable: fallo de red/auth/conectividad con el store remoto. Reintentable.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrRecordNotFound: update/delete sobre un id sin record remoto.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateIdentifier: create sobre un id que ya existe en remoto.
	ErrDuplicateIdentifier = errors.New("duplicate record identifier")
)

// Record es la representación remota: identificador + campos escalares sin orden.
// Name es el identificador lógico (== Event.ID); Handle lo asigna el store y es
// lo que usan ReplaceFields/Delete.
type Record struct {
	Kind   string
	Name   string
	Handle string
	Fields map[string]FieldValue
}

// RecordStore es el contrato CRUD del store remoto.
// Los adapters devuelven ErrRecordNotFound / ErrDuplicateIdentifier tal cual;
// cualquier otro error se trata como fallo de transporte.
type RecordStore interface {
	Insert(ctx context.Context, r Record) error
	QueryAll(ctx context.Context, kind string) ([]Record, error)
	Lookup(ctx context.Context, name string) (Record, error)
	ReplaceFields(ctx context.Context, handle string, fields map[string]FieldValue) error
	Delete(ctx context.Context, handle string) error
}
