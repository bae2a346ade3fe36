package apiauth

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// IssueResetToken generates a fresh opaque reset token for the identity
// registered under email and persists it. Any previous token is
// overwritten, latest wins. Unknown emails fail with ErrIdentityNotFound;
// this is a legitimate business-rule error the caller must branch on.
func (a *Accounts) IssueResetToken(ctx context.Context, email string) (string, error) {
	candidates, err := a.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", ErrIdentityNotFound
	}

	user := candidates[0]
	token := uuid.NewString()

	if err := a.repo.Users().SetResetToken(ctx, user.ID, &token); err != nil {
		return "", err
	}

	return token, nil
}

// RedeemResetToken exchanges a reset token for a new password. The token
// must currently be held by an identity; redemption hashes the new
// password, replaces the stored hash, and clears the token in the same
// transaction, so a token can be redeemed exactly once.
func (a *Accounts) RedeemResetToken(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrResetTokenInvalid
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := a.repo.Users().GetByResetTokenTx(ctx, tx, token)
		if err != nil {
			return err
		}

		return a.repo.Users().ResetPasswordTx(ctx, tx, user.ID, hash)
	})
}
