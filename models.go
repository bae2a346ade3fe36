package apiauth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the identity record. Email is unique and compared
// case-sensitively, exactly as stored. SessionID tracks the token minted
// by the most recent login (last login wins), ResetToken holds the
// currently valid password reset token, both nullable. Users are never
// deleted by this core.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	SessionID     *string    `bun:"session_id,nullzero" json:"session_id,omitempty"`
	ResetToken    *string    `bun:"reset_token,nullzero" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserSession is a durable session record: an opaque token bound to a
// user and a creation timestamp. Records persist until explicitly
// destroyed, so multiple sessions may coexist per user.
type UserSession struct {
	bun.BaseModel `bun:"table:user_sessions,alias:uss"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Token         string    `bun:"token,notnull,unique" json:"token,omitempty"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at,omitempty"`
}
