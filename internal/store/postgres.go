package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmelogistics/inbound-api/internal/models"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// uniqueViolation is the Postgres error code for duplicate-key inserts.
const uniqueViolation = "23505"

// PostgresCallStore is the durable persistence layer for call logs.
type PostgresCallStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCallStore creates a connection pool and fails fast if the
// database is unreachable.
func NewPostgresCallStore(dbURL string) (*PostgresCallStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresCallStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresCallStore) EnsureSchema() error {
	_, err := p.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by the readiness endpoint to validate DB connectivity.
func (p *PostgresCallStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresCallStore) Close() {
	p.pool.Close()
}

const insertCallSQL = `
	INSERT INTO call_logs(
		run_id, carrier_legal_name, mc_number, load_id_searched,
		origin, destination, equipment_type,
		original_rate, final_rate, turns,
		flag_closed_deal, was_transferred,
		call_tag, carrier_sentiment, transcript, date_time
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
`

func callArgs(c *models.CallLog) []any {
	return []any{
		c.RunID, c.CarrierLegalName, c.MCNumber, c.LoadIDSearched,
		c.Origin, c.Destination, c.EquipmentType,
		c.OriginalRate, c.FinalRate, c.Turns,
		bool(c.FlagClosedDeal), bool(c.WasTransferred),
		c.CallTag, c.CarrierSentiment, c.Transcript, c.DateTime,
	}
}

// InsertCall persists a single call record. A duplicate run_id surfaces as
// ErrDuplicateRun so the handler can reject it as a client error.
func (p *PostgresCallStore) InsertCall(ctx context.Context, call *models.CallLog) error {
	_, err := p.pool.Exec(ctx, insertCallSQL, callArgs(call)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateRun, call.RunID)
		}
		return err
	}
	return nil
}

// BulkInsertCalls inserts the records whose run_id does not already exist and
// commits them as one transaction. Existence is checked before insert rather
// than caught from the unique constraint, so a batch with duplicates still
// commits cleanly. Returns the number of records actually inserted.
func (p *PostgresCallStore) BulkInsertCalls(ctx context.Context, calls []models.CallLog) (int, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for i := range calls {
		c := &calls[i]

		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM call_logs WHERE run_id = $1)`,
			c.RunID,
		).Scan(&exists)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(ctx, insertCallSQL, callArgs(c)...); err != nil {
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListCalls returns every stored record, oldest first.
func (p *PostgresCallStore) ListCalls(ctx context.Context) ([]models.CallLog, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT run_id, carrier_legal_name, mc_number, load_id_searched,
		       origin, destination, equipment_type,
		       original_rate, final_rate, turns,
		       flag_closed_deal, was_transferred,
		       call_tag, carrier_sentiment, transcript, date_time
		FROM call_logs
		ORDER BY date_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []models.CallLog
	for rows.Next() {
		var (
			c           models.CallLog
			closed      bool
			transferred bool
		)
		err := rows.Scan(
			&c.RunID, &c.CarrierLegalName, &c.MCNumber, &c.LoadIDSearched,
			&c.Origin, &c.Destination, &c.EquipmentType,
			&c.OriginalRate, &c.FinalRate, &c.Turns,
			&closed, &transferred,
			&c.CallTag, &c.CarrierSentiment, &c.Transcript, &c.DateTime,
		)
		if err != nil {
			return nil, err
		}
		c.FlagClosedDeal = models.FlexBool(closed)
		c.WasTransferred = models.FlexBool(transferred)
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

var _ CallLogStore = (*PostgresCallStore)(nil)
