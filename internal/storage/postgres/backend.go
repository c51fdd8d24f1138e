// Package postgres stores entries directly in a PostgreSQL database, for
// self-hosted setups that skip the hosted data API.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/xolan/daylog/internal/entry"
)

// columns written on insert, in placeholder order.
var columns = []string{
	"user_id", "type", "title", "content", "date", "time", "tags",
	"mood", "energy", "sleep_hours", "sleep_quality",
	"exercise_type", "duration", "intensity",
	"social_type", "social_energy",
	"skill_name", "learning_time", "skill_status", "learning_method",
	"creative_type", "creative_energy",
	"career_activity", "career_feeling", "career_hours",
}

var (
	insertQuery = fmt.Sprintf(
		`INSERT INTO entries (%s) VALUES (%s) RETURNING id::text, created_at`,
		strings.Join(columns, ", "), placeholders(len(columns)))

	selectQuery = `SELECT id::text, user_id, type, title, content, date::text, time, tags, created_at,
	mood, energy, sleep_hours, sleep_quality,
	exercise_type, duration, intensity,
	social_type, social_energy,
	skill_name, learning_time, skill_status, learning_method,
	creative_type, creative_energy,
	career_activity, career_feeling, career_hours
FROM entries WHERE user_id = $1 ORDER BY created_at DESC`

	deleteQuery = `DELETE FROM entries WHERE user_id = $1`
)

// Backend implements store.Backend over database/sql with the pgx driver.
type Backend struct {
	db     *sql.DB
	logger *zap.Logger
}

// New wraps an open database. The schema is expected to be migrated.
func New(db *sql.DB, logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{db: db, logger: logger}
}

// Open connects to dsn, checks the connection and applies migrations.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*Backend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return New(db, logger), nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Insert stores e and returns it with the database-assigned id and
// creation time.
func (b *Backend) Insert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	r := entry.FromEntry(e)
	tags, err := json.Marshal(nonNilTags(r.Tags))
	if err != nil {
		return entry.Entry{}, err
	}

	args := []any{
		r.UserID, r.Type, r.Title, r.Content, r.Date, nullString(r.Time), tags,
		nullString(r.Mood), nullString(r.Energy), nullNumber(r.SleepHours), nullString(r.SleepQuality),
		nullString(r.ExerciseType), nullNumber(r.Duration), nullString(r.Intensity),
		nullString(r.SocialType), nullString(r.SocialEnergy),
		nullString(r.SkillName), nullNumber(r.LearningTime), nullString(r.SkillStatus), nullString(r.LearningMethod),
		nullString(r.CreativeType), nullString(r.CreativeEnergy),
		nullString(r.CareerActivity), nullString(r.CareerFeeling), nullNumber(r.CareerHours),
	}

	if err := b.db.QueryRowContext(ctx, insertQuery, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return entry.Entry{}, fmt.Errorf("error performing sql request: %w", err)
	}
	e.CreatedAt = e.CreatedAt.UTC()
	b.logger.Debug("entry inserted", zap.String("id", e.ID))
	return e, nil
}

// SelectByOwner returns userID's entries, newest first. Rows that no
// longer decode are skipped with a warning.
func (b *Backend) SelectByOwner(ctx context.Context, userID string) ([]entry.Entry, error) {
	rows, err := b.db.QueryContext(ctx, selectQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		e, err := r.Entry()
		if err != nil {
			b.logger.Warn("skipping invalid row", zap.String("id", r.ID), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteByOwner removes every entry of userID.
func (b *Backend) DeleteByOwner(ctx context.Context, userID string) error {
	res, err := b.db.ExecContext(ctx, deleteQuery, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		b.logger.Info("entries deleted", zap.String("user_id", userID), zap.Int64("count", n))
	}
	return nil
}

func scanRecord(rows *sql.Rows) (entry.Record, error) {
	var (
		r    entry.Record
		tags []byte
		text [15]sql.NullString
		nums [4]sql.NullFloat64
	)

	err := rows.Scan(
		&r.ID, &r.UserID, &r.Type, &r.Title, &r.Content, &r.Date, &text[0], &tags, &r.CreatedAt,
		&text[1], &text[2], &nums[0], &text[3],
		&text[4], &nums[1], &text[5],
		&text[6], &text[7],
		&text[8], &nums[2], &text[9], &text[10],
		&text[11], &text[12],
		&text[13], &text[14], &nums[3],
	)
	if err != nil {
		return entry.Record{}, fmt.Errorf("error scanning row: %w", err)
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &r.Tags); err != nil {
			return entry.Record{}, fmt.Errorf("row %s: invalid tags: %w", r.ID, err)
		}
	}
	r.CreatedAt = r.CreatedAt.UTC()

	r.Time = text[0].String
	r.Mood, r.Energy, r.SleepHours, r.SleepQuality = text[1].String, text[2].String, number(nums[0]), text[3].String
	r.ExerciseType, r.Duration, r.Intensity = text[4].String, number(nums[1]), text[5].String
	r.SocialType, r.SocialEnergy = text[6].String, text[7].String
	r.SkillName, r.LearningTime, r.SkillStatus, r.LearningMethod = text[8].String, number(nums[2]), text[9].String, text[10].String
	r.CreativeType, r.CreativeEnergy = text[11].String, text[12].String
	r.CareerActivity, r.CareerFeeling, r.CareerHours = text[13].String, text[14].String, number(nums[3])
	return r, nil
}

func placeholders(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(p, ", ")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullNumber(n entry.Number) sql.NullFloat64 {
	return sql.NullFloat64{Float64: n.Float, Valid: n.Valid}
}

func number(n sql.NullFloat64) entry.Number {
	if !n.Valid {
		return entry.Number{}
	}
	return entry.NewNumber(n.Float64)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
