package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

type ItemRepository struct {
	DB *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) Create(ctx context.Context, i *models.Item) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO items(name, specification, unit, unit_price, vendor_id)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		i.Name, i.Specification, i.Unit, i.UnitPrice, i.VendorID,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
}

func (r *ItemRepository) Get(ctx context.Context, id int) (*models.Item, error) {
	var i models.Item
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, specification, unit, unit_price, vendor_id, created_at, updated_at
		 FROM items WHERE id = $1`, id,
	).Scan(&i.ID, &i.Name, &i.Specification, &i.Unit, &i.UnitPrice,
		&i.VendorID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, specification, unit, unit_price, vendor_id, created_at, updated_at
		 FROM items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var i models.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Specification, &i.Unit,
			&i.UnitPrice, &i.VendorID, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, i *models.Item) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE items SET name=$1, specification=$2, unit=$3, unit_price=$4,
		        vendor_id=$5, updated_at=NOW()
		 WHERE id=$6`,
		i.Name, i.Specification, i.Unit, i.UnitPrice, i.VendorID, i.ID)
	return err
}

func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	return err
}
