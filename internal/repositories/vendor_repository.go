package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

type VendorRepository struct {
	DB *pgxpool.Pool
}

func NewVendorRepository(db *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{DB: db}
}

func (r *VendorRepository) Create(ctx context.Context, v *models.Vendor) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO vendors(name, business_number, contact_name, phone, email, address)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		v.Name, v.BusinessNumber, v.ContactName, v.Phone, v.Email, v.Address,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VendorRepository) Get(ctx context.Context, id int) (*models.Vendor, error) {
	var v models.Vendor
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, business_number, contact_name, phone, email, address, created_at, updated_at
		 FROM vendors WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.BusinessNumber, &v.ContactName, &v.Phone,
		&v.Email, &v.Address, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) List(ctx context.Context) ([]*models.Vendor, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, business_number, contact_name, phone, email, address, created_at, updated_at
		 FROM vendors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.BusinessNumber, &v.ContactName,
			&v.Phone, &v.Email, &v.Address, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepository) Update(ctx context.Context, v *models.Vendor) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE vendors SET name=$1, business_number=$2, contact_name=$3, phone=$4,
		        email=$5, address=$6, updated_at=NOW()
		 WHERE id=$7`,
		v.Name, v.BusinessNumber, v.ContactName, v.Phone, v.Email, v.Address, v.ID)
	return err
}

func (r *VendorRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM vendors WHERE id = $1", id)
	return err
}
