package apiauth

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ResetUserPasswordSQL = `UPDATE "users" AS "usr"
SET
	"password_hash" = ?,
	"reset_token" = NULL,
	"updated_at" = CURRENT_TIMESTAMP
WHERE
	"usr"."id" = ?
RETURNING *;`

type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)

	GetByEmail(ctx context.Context, email string) ([]*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	GetByResetTokenTx(ctx context.Context, tx bun.IDB, token string) (*User, error)

	SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error
	SetSessionTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token *string) error
	SetResetToken(ctx context.Context, id uuid.UUID, token *string) error
	SetResetTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token *string) error

	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// Register inserts a new user. The email uniqueness check belongs to the
// storage layer: a constraint violation surfaces as ErrEmailTaken, which
// closes the check-then-insert race between concurrent registrations.
func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	created, err := a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, WrapStorageError(err, "failed to register user")
	}
	return created, nil
}

// GetByEmail returns every user whose email matches exactly, in insertion
// order. Email comparison is case-sensitive, as stored.
func (a *users) GetByEmail(ctx context.Context, email string) ([]*User, error) {
	var records []*User
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.email = ?", email).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, WrapStorageError(err, "failed to query users by email")
	}
	return records, nil
}

func (a *users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, WrapStorageError(err, "failed to query user by id")
	}
	return record, nil
}

func (a *users) GetByResetToken(ctx context.Context, token string) (*User, error) {
	return a.GetByResetTokenTx(ctx, a.db, token)
}

func (a *users) GetByResetTokenTx(ctx context.Context, tx bun.IDB, token string) (*User, error) {
	if token == "" {
		return nil, ErrResetTokenInvalid
	}

	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.reset_token = ?", token).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrResetTokenInvalid
		}
		return nil, WrapStorageError(err, "failed to query user by reset token")
	}
	return record, nil
}

func (a *users) SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error {
	return a.SetSessionTokenTx(ctx, a.db, id, token)
}

// SetSessionTokenTx overwrites the user's session_id column, NULL when
// token is nil. Raw SQL because the ORM update skips zeroed fields and
// cannot clear the column.
func (a *users) SetSessionTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token *string) error {
	_, err := tx.NewRaw(`
		UPDATE "users" AS "usr"
		SET
			"session_id" = ?,
			"updated_at" = CURRENT_TIMESTAMP
		WHERE ("usr".id = ?);
	`, token, id).Exec(ctx)
	if err != nil {
		return WrapStorageError(err, "failed to update session token")
	}
	return err
}

func (a *users) SetResetToken(ctx context.Context, id uuid.UUID, token *string) error {
	return a.SetResetTokenTx(ctx, a.db, id, token)
}

func (a *users) SetResetTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID, token *string) error {
	_, err := tx.NewRaw(`
		UPDATE "users" AS "usr"
		SET
			"reset_token" = ?,
			"updated_at" = CURRENT_TIMESTAMP
		WHERE ("usr".id = ?);
	`, token, id).Exec(ctx)
	if err != nil {
		return WrapStorageError(err, "failed to update reset token")
	}
	return err
}

func (a *users) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.ResetPasswordTx(ctx, a.db, id, passwordHash)
}

// ResetPasswordTx replaces the password hash and clears the reset token
// in one statement, so redemption is single-use by construction.
func (a *users) ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, ResetUserPasswordSQL, passwordHash, id.String())
	if err != nil {
		return WrapStorageError(err, "failed to reset password")
	}

	if len(res) == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

// isUniqueViolation matches the uniqueness errors of the storage engines
// this repository runs against.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
