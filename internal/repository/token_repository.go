package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists refresh tokens and password reset tokens. Only
// SHA-256 hashes are stored; the raw values travel to the client once
// and are never written down.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return translate(err)
}

// ValidateRefresh returns the owning userID if a non-revoked,
// non-expired token with this hash exists.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, translate(err)
	}
	if revokedAt.Valid {
		return 0, ErrNotFound
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, ErrNotFound
	}
	return userID, nil
}

// RevokeByHash marks a refresh token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return translate(err)
}

// RevokeAllForUser revokes all of a user's active refresh tokens.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return translate(err)
}

// StoreReset inserts a password reset token hash row.
func (r *TokenRepo) StoreReset(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO password_resets (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return translate(err)
}

// ConsumeReset validates a reset token and marks it used in one step.
// It returns the owning userID. A token that is expired, already used
// or unknown yields ErrNotFound.
func (r *TokenRepo) ConsumeReset(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		id        uint64
		userID    uint64
		expiresAt time.Time
		usedAt    sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, expires_at, used_at FROM password_resets WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&id, &userID, &expiresAt, &usedAt)
	if err != nil {
		return 0, translate(err)
	}
	if usedAt.Valid || time.Now().UTC().After(expiresAt) {
		return 0, ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE password_resets SET used_at=NOW() WHERE id=? AND used_at IS NULL", id)
	if err != nil {
		return 0, translate(err)
	}
	// A concurrent consume of the same token loses here.
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrNotFound
	}
	return userID, nil
}
