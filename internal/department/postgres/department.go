package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/civicgrid/hr-management/internal/department"
	departmentDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/department"
)

type Repository struct {
	db *gorm.DB
}

var _ department.RepositoryAPI = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *Repository) Create(ctx context.Context, dept *departmentDatamodel.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *Repository) Update(ctx context.Context, dept *departmentDatamodel.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}
