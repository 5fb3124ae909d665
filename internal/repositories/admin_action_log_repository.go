package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

type AdminActionLogRepository struct {
	DB *pgxpool.Pool
}

func NewAdminActionLogRepository(db *pgxpool.Pool) *AdminActionLogRepository {
	return &AdminActionLogRepository{DB: db}
}

// CreateActionLog records an admin action
func (r *AdminActionLogRepository) CreateActionLog(ctx context.Context, l *models.AdminActionLog) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO admin_action_logs(admin_user_id, action_type, target_type, target_id,
		        description, old_value, new_value, ip_address)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.AdminUserID, l.ActionType, l.TargetType, l.TargetID,
		l.Description, l.OldValue, l.NewValue, l.IPAddress)
	return err
}

func (r *AdminActionLogRepository) List(ctx context.Context, limit int) ([]*models.AdminActionLog, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, COALESCE(admin_user_id, 0), action_type, target_type, target_id,
		        description, old_value, new_value, ip_address, created_at
		 FROM admin_action_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AdminActionLog
	for rows.Next() {
		var l models.AdminActionLog
		if err := rows.Scan(&l.ID, &l.AdminUserID, &l.ActionType, &l.TargetType, &l.TargetID,
			&l.Description, &l.OldValue, &l.NewValue, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
