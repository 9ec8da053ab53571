package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud-events-sync/internal/domain/events"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Insert(ctx context.Context, rec events.Record) error {
	if strings.TrimSpace(rec.Name) == "" {
		return errors.New("record name required")
	}
	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cloud_records (record_type, record_name, fields)
		VALUES ($1, $2, $3)
	`, rec.Kind, rec.Name, fields)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return events.ErrDuplicateIdentifier
		}
		return err
	}
	return nil
}

// QueryAll sin filtro: todos los records del tipo, en orden de inserción.
func (r *RecordsRepo) QueryAll(ctx context.Context, kind string) ([]events.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT handle, record_type, record_name, fields
		FROM cloud_records
		WHERE record_type = $1
		ORDER BY handle ASC
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) Lookup(ctx context.Context, name string) (events.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT handle, record_type, record_name, fields
		FROM cloud_records
		WHERE record_name = $1
	`, name)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.Record{}, events.ErrRecordNotFound
		}
		return events.Record{}, err
	}
	return rec, nil
}

func (r *RecordsRepo) ReplaceFields(ctx context.Context, handle string, fields map[string]events.FieldValue) error {
	h, err := parseHandle(handle)
	if err != nil {
		return events.ErrRecordNotFound
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cloud_records
		SET fields = $2, modified_at = now()
		WHERE handle = $1
	`, h, raw)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrRecordNotFound
	}
	return nil
}

func (r *RecordsRepo) Delete(ctx context.Context, handle string) error {
	h, err := parseHandle(handle)
	if err != nil {
		return events.ErrRecordNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM cloud_records WHERE handle = $1`, h)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrRecordNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord no falla por fields raros: FieldValue los marca inválidos y el
// decode leniente del dominio descarta el record.
func scanRecord(s scanner) (events.Record, error) {
	var (
		handle int64
		rec    events.Record
		raw    []byte
	)
	if err := s.Scan(&handle, &rec.Kind, &rec.Name, &raw); err != nil {
		return events.Record{}, err
	}
	rec.Handle = strconv.FormatInt(handle, 10)
	rec.Fields = map[string]events.FieldValue{}
	if err := json.Unmarshal(raw, &rec.Fields); err != nil {
		// jsonb que no es objeto: record sin fields
		rec.Fields = map[string]events.FieldValue{}
	}
	return rec, nil
}

func parseHandle(handle string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(handle), 10, 64)
}
