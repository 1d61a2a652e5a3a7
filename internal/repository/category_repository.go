package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(c *model.Category) error {
	return r.DB.Create(c).Error
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var c model.Category
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *CategoryRepository) FindByName(name string) (*model.Category, error) {
	var c model.Category
	err := r.DB.Where("name = ?", name).First(&c).Error
	return &c, err
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var cs []model.Category
	err := r.DB.Order("name asc").Find(&cs).Error
	return cs, err
}

func (r *CategoryRepository) Update(c *model.Category) error {
	return r.DB.Save(c).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Category{}, id).Error
}
