package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/imanelbaz22-debug/serene-app/internal/model"
	"github.com/imanelbaz22-debug/serene-app/internal/store"
)

//go:embed schema.sql
var schema string

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres schema: %w", err)
	}
	return nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users       { return &users{db: s.db} }
func (s *pgStore) CheckIns() store.CheckIns { return &checkins{db: s.db} }
func (s *pgStore) Journal() store.Journal   { return &journal{db: s.db} }
func (s *pgStore) Chat() store.Chat         { return &chat{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Users ---
type users struct{ db *sql.DB }

func (u *users) GetOrCreateByExternalID(ctx context.Context, externalID string, username *string) (*model.User, error) {
	if _, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, external_id, username)
        VALUES ($1,$2,$3)
        ON CONFLICT (external_id) DO NOTHING
    `, uuid.New().String(), externalID, username); err != nil {
		return nil, err
	}
	return u.scanOne(ctx, `
        SELECT user_id, external_id, username, email, creation_time
        FROM users WHERE external_id=$1
    `, externalID)
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	return u.scanOne(ctx, `
        SELECT user_id, external_id, username, email, creation_time
        FROM users WHERE user_id=$1
    `, userID)
}

func (u *users) scanOne(ctx context.Context, query string, arg string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&out.UserID, &out.ExternalID, &out.Username, &out.Email, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NewNotFoundError("user", arg)
		}
		return nil, err
	}
	out.CreationTime = out.CreationTime.UTC()
	return &out, nil
}

// --- Check-ins ---
type checkins struct{ db *sql.DB }

func (c *checkins) Create(ctx context.Context, in *model.CheckIn) (*model.CheckIn, error) {
	out := *in
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	out.Timestamp = out.Timestamp.UTC()
	if _, err := c.db.ExecContext(ctx, `
        INSERT INTO checkins (checkin_id, user_id, mood, text, energy, sleep_hours, ts)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.ID, out.UserID, out.Mood, out.Text, out.Energy, out.SleepHours, out.Timestamp); err != nil {
		return nil, err
	}
	return &out, nil
}

const checkinCols = `checkin_id, user_id, mood, text, energy, sleep_hours, ts`

func (c *checkins) ListSince(ctx context.Context, userID string, since *time.Time) ([]model.CheckIn, error) {
	var rows *sql.Rows
	var err error
	if since == nil {
		rows, err = c.db.QueryContext(ctx, `SELECT `+checkinCols+` FROM checkins WHERE user_id=$1 ORDER BY ts ASC`, userID)
	} else {
		rows, err = c.db.QueryContext(ctx, `SELECT `+checkinCols+` FROM checkins WHERE user_id=$1 AND ts >= $2 ORDER BY ts ASC`, userID, since.UTC())
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.CheckIn
	for rows.Next() {
		ci, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *ci)
	}
	return res, rows.Err()
}

func (c *checkins) Latest(ctx context.Context, userID string) (*model.CheckIn, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+checkinCols+` FROM checkins WHERE user_id=$1 ORDER BY ts DESC LIMIT 1`, userID)
	ci, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("checkin", "no check-ins for user")
	}
	return ci, err
}

func (c *checkins) Dates(ctx context.Context, userID string) ([]time.Time, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT DISTINCT (ts AT TIME ZONE 'UTC')::date AS d
        FROM checkins WHERE user_id=$1 ORDER BY d DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		res = append(res, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
	}
	return res, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanCheckIn(s scanner) (*model.CheckIn, error) {
	var out model.CheckIn
	var energy sql.NullInt64
	if err := s.Scan(&out.ID, &out.UserID, &out.Mood, &out.Text, &energy, &out.SleepHours, &out.Timestamp); err != nil {
		return nil, err
	}
	if energy.Valid {
		e := int(energy.Int64)
		out.Energy = &e
	}
	out.Timestamp = out.Timestamp.UTC()
	return &out, nil
}

// --- Journal ---
type journal struct{ db *sql.DB }

func (j *journal) Create(ctx context.Context, in *model.JournalEntry) (*model.JournalEntry, error) {
	out := *in
	if out.EntryID == "" {
		out.EntryID = uuid.New().String()
	}
	out.Timestamp = out.Timestamp.UTC()
	if _, err := j.db.ExecContext(ctx, `
        INSERT INTO journal_entries (entry_id, user_id, content, summary, advice, ts)
        VALUES ($1,$2,$3,$4,$5,$6)
    `, out.EntryID, out.UserID, out.Content, out.Summary, out.Advice, out.Timestamp); err != nil {
		return nil, err
	}
	return &out, nil
}

const journalCols = `entry_id, user_id, content, summary, advice, ts`

func (j *journal) List(ctx context.Context, userID string) ([]model.JournalEntry, error) {
	return j.query(ctx, `SELECT `+journalCols+` FROM journal_entries WHERE user_id=$1 ORDER BY ts DESC, seq DESC`, userID)
}

func (j *journal) Recent(ctx context.Context, userID string, n int) ([]model.JournalEntry, error) {
	res, err := j.query(ctx, `SELECT `+journalCols+` FROM journal_entries WHERE user_id=$1 ORDER BY ts DESC, seq DESC LIMIT $2`, userID, n)
	if err != nil {
		return nil, err
	}
	reverse(res)
	return res, nil
}

func (j *journal) query(ctx context.Context, q string, args ...any) ([]model.JournalEntry, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.JournalEntry
	for rows.Next() {
		var e model.JournalEntry
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.Content, &e.Summary, &e.Advice, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Timestamp = e.Timestamp.UTC()
		res = append(res, e)
	}
	return res, rows.Err()
}

func (j *journal) Delete(ctx context.Context, userID, entryID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE user_id=$1 AND entry_id=$2`, userID, entryID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.NewNotFoundError("journal entry", entryID)
	}
	return nil
}

// --- Chat ---
type chat struct{ db *sql.DB }

func (c *chat) Append(ctx context.Context, msgs ...*model.ChatMessage) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range msgs {
		if m.MessageID == "" {
			m.MessageID = uuid.New().String()
		}
		m.Timestamp = m.Timestamp.UTC()
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO chat_messages (message_id, user_id, role, content, ts)
            VALUES ($1,$2,$3,$4,$5)
        `, m.MessageID, m.UserID, m.Role, m.Content, m.Timestamp); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const chatCols = `message_id, user_id, role, content, ts`

func (c *chat) Recent(ctx context.Context, userID string, n int) ([]model.ChatMessage, error) {
	res, err := c.query(ctx, `SELECT `+chatCols+` FROM chat_messages WHERE user_id=$1 ORDER BY ts DESC, seq DESC LIMIT $2`, userID, n)
	if err != nil {
		return nil, err
	}
	reverse(res)
	return res, nil
}

func (c *chat) List(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	return c.query(ctx, `SELECT `+chatCols+` FROM chat_messages WHERE user_id=$1 ORDER BY ts ASC, seq ASC`, userID)
}

func (c *chat) query(ctx context.Context, q string, args ...any) ([]model.ChatMessage, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.MessageID, &m.UserID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Timestamp = m.Timestamp.UTC()
		res = append(res, m)
	}
	return res, rows.Err()
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
