package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = "employee"
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, phone, password_hash, role)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, is_active, created_at, updated_at`,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, email, phone, password_hash, role, is_active, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, email, phone, password_hash, role, is_active, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, email, phone, password_hash, role, is_active, created_at, updated_at
		 FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
			&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if u.PasswordHash != "" {
		_, err := r.DB.Exec(ctx,
			`UPDATE users SET name=$1, email=$2, phone=$3, password_hash=$4, role=$5,
			        is_active=$6, updated_at=NOW()
			 WHERE id=$7`,
			u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.IsActive, u.ID)
		return err
	}
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET name=$1, email=$2, phone=$3, role=$4, is_active=$5, updated_at=NOW()
		 WHERE id=$6`,
		u.Name, u.Email, u.Phone, u.Role, u.IsActive, u.ID)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

// GetReferences collects the projects and orders that still point at a
// user. Orders block deletion permanently; projects can be reassigned.
func (r *UserRepository) GetReferences(ctx context.Context, userID int) (*models.UserReferences, error) {
	refs := &models.UserReferences{}
	refs.References.Projects = []models.ProjectRef{}
	refs.References.Orders = []models.OrderRef{}

	rows, err := r.DB.Query(ctx,
		"SELECT id, name FROM projects WHERE manager_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p models.ProjectRef
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		refs.References.Projects = append(refs.References.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orderRows, err := r.DB.Query(ctx,
		"SELECT id, order_number FROM purchase_orders WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var o models.OrderRef
		if err := orderRows.Scan(&o.ID, &o.OrderNumber); err != nil {
			return nil, err
		}
		refs.References.Orders = append(refs.References.Orders, o)
	}
	if err := orderRows.Err(); err != nil {
		return nil, err
	}

	refs.CanDelete = len(refs.References.Projects) == 0 && len(refs.References.Orders) == 0
	return refs, nil
}

// ReassignProjects moves every project managed by fromUserID to
// toUserID and returns the number of projects moved.
func (r *UserRepository) ReassignProjects(ctx context.Context, fromUserID, toUserID int) (int, error) {
	tag, err := r.DB.Exec(ctx,
		"UPDATE projects SET manager_id = $1, updated_at = NOW() WHERE manager_id = $2",
		toUserID, fromUserID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
