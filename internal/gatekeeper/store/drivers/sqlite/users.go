package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/murkaverse/gatekeeper/internal/gatekeeper/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `user_id, agreed_at, verified_at, attempts_count,
	attempts_window_start, cooldown_until, last_join_request_at, language`

func (r *usersRepo) GetUser(ctx context.Context, userID int64) (domain.UserRecord, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	return scanUser(row)
}

func (r *usersRepo) EnsureUser(ctx context.Context, userID int64) (domain.UserRecord, error) {
	// INSERT OR IGNORE handles the concurrent-create race; the follow-up
	// read is guaranteed to find the row.
	if _, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (user_id) VALUES (?)`, userID); err != nil {
		return domain.UserRecord{}, err
	}
	return r.GetUser(ctx, userID)
}

func (r *usersRepo) SetAgreed(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (user_id, agreed_at) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET agreed_at = excluded.agreed_at`,
		userID, at.Unix())
	return err
}

func (r *usersRepo) SetVerified(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET
			verified_at = ?,
			attempts_count = 0,
			attempts_window_start = NULL,
			cooldown_until = NULL
		 WHERE user_id = ?`,
		at.Unix(), userID)
	return err
}

func (r *usersRepo) UpdateAttempts(ctx context.Context, userID int64, count int, windowStart, cooldownUntil *time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET
			attempts_count = ?,
			attempts_window_start = ?,
			cooldown_until = ?
		 WHERE user_id = ?`,
		count, mapUnixNull(windowStart), mapUnixNull(cooldownUntil), userID)
	return err
}

func (r *usersRepo) ResetAttempts(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET
			attempts_count = 0,
			attempts_window_start = NULL,
			cooldown_until = NULL
		 WHERE user_id = ?`, userID)
	return err
}

func (r *usersRepo) SetJoinRequestTime(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (user_id, last_join_request_at) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET last_join_request_at = excluded.last_join_request_at`,
		userID, at.Unix())
	return err
}

func (r *usersRepo) SetLanguage(ctx context.Context, userID int64, lang string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (user_id, language) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET language = excluded.language`,
		userID, lang)
	return err
}

func (r *usersRepo) CountVerifiedSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE verified_at > ?`, cutoff.Unix()).Scan(&count)
	return count, err
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func scanUser(row *sql.Row) (domain.UserRecord, error) {
	var (
		u           domain.UserRecord
		agreedAt    sql.NullInt64
		verifiedAt  sql.NullInt64
		windowStart sql.NullInt64
		cooldown    sql.NullInt64
		joinRequest sql.NullInt64
	)

	err := row.Scan(
		&u.UserID,
		&agreedAt,
		&verifiedAt,
		&u.AttemptsCount,
		&windowStart,
		&cooldown,
		&joinRequest,
		&u.Language,
	)
	if err != nil {
		return domain.UserRecord{}, mapNotFound(err)
	}

	u.AgreedAt = mapNullUnix(agreedAt)
	u.VerifiedAt = mapNullUnix(verifiedAt)
	u.AttemptsWindowStart = mapNullUnix(windowStart)
	u.CooldownUntil = mapNullUnix(cooldown)
	u.LastJoinRequestAt = mapNullUnix(joinRequest)

	return u, nil
}
