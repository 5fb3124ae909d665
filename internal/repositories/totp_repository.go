package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

func (r *TOTPRepository) GetByUser(ctx context.Context, userID int) (*models.TOTPSecret, error) {
	var t models.TOTPSecret
	err := r.DB.QueryRow(ctx,
		`SELECT id, user_id, secret, enabled, created_at
		 FROM totp_secrets WHERE user_id = $1`, userID,
	).Scan(&t.ID, &t.UserID, &t.Secret, &t.Enabled, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Save stores a fresh (not yet enabled) secret, replacing any prior
// unconfirmed enrollment.
func (r *TOTPRepository) Save(ctx context.Context, t *models.TOTPSecret) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO totp_secrets(user_id, secret, enabled)
		 VALUES($1, $2, FALSE)
		 ON CONFLICT (user_id) DO UPDATE SET secret = EXCLUDED.secret, enabled = FALSE
		 RETURNING id, created_at`,
		t.UserID, t.Secret,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TOTPRepository) Enable(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		"UPDATE totp_secrets SET enabled = TRUE WHERE user_id = $1", userID)
	return err
}

func (r *TOTPRepository) Delete(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		"DELETE FROM totp_secrets WHERE user_id = $1", userID)
	return err
}
