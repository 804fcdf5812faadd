package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"appr/internal/appr"
	"appr/internal/audit"
	"appr/pkg/platform/sentinel"
)

const createValidationsTable = `
	CREATE TABLE IF NOT EXISTS appr_validations (
		request_id        TEXT PRIMARY KEY,
		recorded_at       TIMESTAMPTZ NOT NULL,
		flight_number     TEXT NOT NULL,
		departure_airport CHAR(3) NOT NULL,
		disruption_type   TEXT NOT NULL,
		applicable        BOOLEAN NOT NULL,
		eligible          BOOLEAN NOT NULL,
		amount            NUMERIC(10, 2) NOT NULL,
		result            JSONB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS appr_validations_recorded_at_idx
		ON appr_validations (recorded_at DESC);
`

const selectValidationColumns = `
	SELECT request_id, recorded_at, flight_number, departure_airport,
		   disruption_type, applicable, eligible, amount, result
	FROM appr_validations
`

// PostgresStore persists records in the appr_validations table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the table and index when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createValidationsTable); err != nil {
		return fmt.Errorf("create appr_validations: %w", err)
	}
	return nil
}

// Append is idempotent: duplicate request ids are ignored via ON CONFLICT DO NOTHING.
func (s *PostgresStore) Append(ctx context.Context, rec audit.Record) error {
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal validation result: %w", err)
	}

	query := `
		INSERT INTO appr_validations (
			request_id, recorded_at, flight_number, departure_airport,
			disruption_type, applicable, eligible, amount, result
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (request_id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		rec.RequestID,
		rec.Timestamp,
		rec.FlightNumber,
		rec.DepartureAirport,
		string(rec.DisruptionType),
		rec.Applicable,
		rec.Eligible,
		rec.Amount,
		result,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByRequestID(ctx context.Context, requestID string) (*audit.Record, error) {
	row := s.db.QueryRowContext(ctx, selectValidationColumns+` WHERE request_id = $1`, requestID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find audit record: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]audit.Record, error) {
	query := selectValidationColumns + ` ORDER BY recorded_at DESC, request_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	out := []audit.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*audit.Record, error) {
	var (
		rec            audit.Record
		disruptionType string
		amount         decimal.Decimal
		result         []byte
	)
	err := row.Scan(
		&rec.RequestID,
		&rec.Timestamp,
		&rec.FlightNumber,
		&rec.DepartureAirport,
		&disruptionType,
		&rec.Applicable,
		&rec.Eligible,
		&amount,
		&result,
	)
	if err != nil {
		return nil, err
	}

	rec.Timestamp = rec.Timestamp.UTC()
	rec.DisruptionType = appr.DisruptionType(disruptionType)
	rec.Amount = amount

	var res appr.ValidationResult
	if err := json.Unmarshal(result, &res); err != nil {
		return nil, fmt.Errorf("decode validation result: %w", err)
	}
	rec.Result = &res
	return &rec, nil
}
