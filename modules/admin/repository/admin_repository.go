package repository

import (
	"context"
	"time"

	"gradinvite/core/database"
	"gradinvite/core/logger"
	"gradinvite/modules/admin/entity"
)

type AdminRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	Create(ctx context.Context, admin *entity.Admin) error
}

type AdminRepository struct {
	db database.Database
}

func NewAdminRepository(db database.Database) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`
	var admin entity.Admin
	err := r.db.GetContext(ctx, &admin, query, email)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create exists for out-of-band seeding; there is no signup flow.
func (r *AdminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	query := `
		INSERT INTO admins (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	admin.CreatedAt = time.Now()

	row := r.db.QueryRowContext(ctx, query, admin.Email, admin.PasswordHash, admin.CreatedAt)
	if err := row.Scan(&admin.ID); err != nil {
		logger.Error("AdminRepository:Create:Error:", err)
		return err
	}
	return nil
}
