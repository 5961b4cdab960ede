package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pocketlist/pocketlist/internal/api/domain"
	"github.com/pocketlist/pocketlist/internal/api/store"
)

type usersRepo struct {
	db querier
}

const userColumns = `id, email, name, password_hash, reset_token_hash, reset_token_expiry, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	var (
		ident domain.Identity
		name  sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name FROM users WHERE id = ?`, id).
		Scan(&ident.ID, &ident.Email, &name)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	if name.Valid {
		ident.Name = name.String
	}
	return ident, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, reset_token_hash, reset_token_expiry, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		mapOptionalString(u.Name),
		u.PasswordHash,
		u.ResetTokenHash,
		mapOptionalUnix(u.ResetTokenExpiry),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) SetResetToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET reset_token_hash = ?, reset_token_expiry = ?, updated_at = ? WHERE id = ?`,
		tokenHash, expiry.Unix(), time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) FindUserWithActiveResetToken(ctx context.Context, now time.Time) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE reset_token_hash IS NOT NULL AND reset_token_expiry > ?
		 ORDER BY id LIMIT 1`, now.Unix())
	return scanUser(row)
}

func (r *usersRepo) ClearResetToken(ctx context.Context, userID string, priorTokenHash string, newPasswordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET password_hash = ?, reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = ?
		 WHERE id = ? AND reset_token_hash = ?`,
		newPasswordHash, time.Now().UTC(), userID, priorTokenHash)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The token was spent or replaced between read and write.
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u           domain.User
		name        sql.NullString
		resetHash   sql.NullString
		resetExpiry sql.NullInt64
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&name,
		&u.PasswordHash,
		&resetHash,
		&resetExpiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	if name.Valid {
		u.Name = name.String
	}
	u.ResetTokenHash = mapNullString(resetHash)
	u.ResetTokenExpiry = mapNullUnix(resetExpiry)
	return u, nil
}
