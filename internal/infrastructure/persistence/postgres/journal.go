package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/questforge/quest-registry/internal/domain/shared"
	"github.com/questforge/quest-registry/internal/infrastructure/messaging"
	"github.com/questforge/quest-registry/pkg/circuitbreaker"
	"github.com/questforge/quest-registry/pkg/retry"
)

// journalSchema is the append-only audit table. Rows are never updated or
// deleted; journal_seq gives a total order over committed transitions.
const journalSchema = `
CREATE TABLE IF NOT EXISTS event_journal (
	journal_seq  BIGSERIAL PRIMARY KEY,
	event_id     UUID NOT NULL UNIQUE,
	event_type   TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	occurred_at  TIMESTAMP WITH TIME ZONE NOT NULL,
	version      INTEGER NOT NULL,
	payload      JSONB NOT NULL,
	recorded_at  TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_event_journal_type
	ON event_journal (event_type, journal_seq);

CREATE INDEX IF NOT EXISTS idx_event_journal_aggregate
	ON event_journal (aggregate_id, journal_seq);
`

// JournalEntry is one recorded transition.
type JournalEntry struct {
	Seq         int64
	EventID     string
	EventType   shared.EventType
	AggregateID string
	OccurredAt  time.Time
	Version     int
	Payload     []byte
	RecordedAt  time.Time
}

// EventJournal persists every published event to PostgreSQL. Like the
// pub/sub mirror it is advisory: a failed append is retried, then logged
// and dropped, never surfaced to the transition that raised the event.
type EventJournal struct {
	conn    *Connection
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewEventJournal creates a journal over an open connection.
func NewEventJournal(conn *Connection, logger *zap.Logger) *EventJournal {
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &EventJournal{
		conn:    conn,
		retrier: retry.DatabaseRetrier(),
		logger:  logger,
	}
	j.breaker = circuitbreaker.JournalBreaker(func(name string, from, to circuitbreaker.State) {
		logger.Warn("event journal: circuit state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	})
	return j
}

// Bootstrap creates the journal table and indexes if they do not exist. The
// DDL runs in one transaction so a partial bootstrap never survives.
func (j *EventJournal) Bootstrap(ctx context.Context) error {
	err := j.conn.WithTx(ctx, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, journalSchema)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	return nil
}

// Handler returns an event handler suitable for bus.SubscribeAll.
func (j *EventJournal) Handler() shared.EventHandler {
	return func(event shared.Event) error {
		j.Record(context.Background(), event)
		return nil
	}
}

// Record appends one event to the journal.
func (j *EventJournal) Record(ctx context.Context, event shared.Event) {
	env, err := messaging.Envelope(event)
	if err != nil {
		j.logger.Warn("event journal: envelope failed",
			zap.String("event_type", string(event.EventType())),
			zap.Error(err))
		return
	}

	err = j.breaker.Execute(ctx, func(ctx context.Context) error {
		return j.retrier.Do(ctx, func(ctx context.Context) error {
			var seq int64
			scanErr := j.conn.QueryRow(ctx, `
				INSERT INTO event_journal (event_id, event_type, aggregate_id, occurred_at, version, payload)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (event_id) DO NOTHING
				RETURNING journal_seq
			`, env.ID, string(env.Type), env.AggregateID, env.Timestamp, env.Version, env.Payload).Scan(&seq)
			if IsNoRows(scanErr) {
				// The event id is already journaled; nothing to do.
				j.logger.Debug("event journal: duplicate event id",
					zap.String("event_id", env.ID))
				return nil
			}
			if scanErr != nil {
				return retry.Retryable(scanErr)
			}
			return nil
		})
	})
	if err != nil {
		j.logger.Warn("event journal: append failed",
			zap.String("event_id", env.ID),
			zap.String("event_type", string(env.Type)),
			zap.Error(err))
	}
}

// Stream returns journal entries after the given sequence number, oldest
// first, up to limit rows. Use seq 0 to read from the beginning.
func (j *EventJournal) Stream(ctx context.Context, afterSeq int64, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := j.conn.Query(ctx, `
		SELECT journal_seq, event_id, event_type, aggregate_id, occurred_at, version, payload, recorded_at
		FROM event_journal
		WHERE journal_seq > $1
		ORDER BY journal_seq
		LIMIT $2
	`, afterSeq, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// AggregateHistory returns all journal entries for one aggregate, oldest first.
func (j *EventJournal) AggregateHistory(ctx context.Context, aggregateID string) ([]JournalEntry, error) {
	rows, err := j.conn.Query(ctx, `
		SELECT journal_seq, event_id, event_type, aggregate_id, occurred_at, version, payload, recorded_at
		FROM event_journal
		WHERE aggregate_id = $1
		ORDER BY journal_seq
	`, aggregateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

type journalRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEntries(rows journalRows) ([]JournalEntry, error) {
	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var eventType string
		if err := rows.Scan(&e.Seq, &e.EventID, &eventType, &e.AggregateID, &e.OccurredAt, &e.Version, &e.Payload, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.EventType = shared.EventType(eventType)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
