package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

type ProjectRepository struct {
	DB *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	if p.Status == "" {
		p.Status = "active"
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO projects(name, description, manager_id, status, start_date, end_date)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.ManagerID, p.Status, p.StartDate, p.EndDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepository) Get(ctx context.Context, id int) (*models.Project, error) {
	var p models.Project
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, description, manager_id, status, start_date, end_date, created_at, updated_at
		 FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.ManagerID, &p.Status,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, manager_id, status, start_date, end_date, created_at, updated_at
		 FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ManagerID, &p.Status,
			&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE projects SET name=$1, description=$2, manager_id=$3, status=$4,
		        start_date=$5, end_date=$6, updated_at=NOW()
		 WHERE id=$7`,
		p.Name, p.Description, p.ManagerID, p.Status, p.StartDate, p.EndDate, p.ID)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	return err
}

// AddMember adds a user to a project; duplicate memberships are ignored
func (r *ProjectRepository) AddMember(ctx context.Context, m *models.ProjectMember) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO project_members(project_id, user_id, member_role)
		 VALUES($1, $2, $3)
		 ON CONFLICT (project_id, user_id) DO UPDATE SET member_role = EXCLUDED.member_role
		 RETURNING id, created_at`,
		m.ProjectID, m.UserID, m.MemberRole,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *ProjectRepository) ListMembers(ctx context.Context, projectID int) ([]*models.ProjectMember, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, project_id, user_id, member_role, created_at
		 FROM project_members WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.ProjectMember
	for rows.Next() {
		var m models.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.MemberRole, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID int) error {
	_, err := r.DB.Exec(ctx,
		"DELETE FROM project_members WHERE project_id = $1 AND user_id = $2",
		projectID, userID)
	return err
}
