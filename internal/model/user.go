package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. Handlers define separate response types with the
// JSON tags they need; the model is what the repository layer
// scans into.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address, stored lowercased.
//  Username     – display name chosen at registration.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries expiry and revocation
// metadata. The plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

// PasswordReset models an entry in the `password_resets` table. A
// reset token is single-use: UsedAt records when it was consumed.
// As with refresh tokens only the SHA-256 hash is persisted.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user the reset was requested for.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  UsedAt    – when the token was consumed (null if unused).
//  CreatedAt – timestamp of creation.
type PasswordReset struct {
	ID        uint64     // password_resets.id
	UserID    uint64     // password_resets.user_id
	TokenHash string     // password_resets.token_hash
	ExpiresAt time.Time  // password_resets.expires_at
	UsedAt    *time.Time // password_resets.used_at (nullable)
	CreatedAt time.Time  // password_resets.created_at
}
