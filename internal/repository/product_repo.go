package repository

import (
	"go-farm-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductTypeRepository interface {
	Create(pt *model.ProductType) error
	FindAll() ([]model.ProductType, error)
	FindByID(id uuid.UUID) (*model.ProductType, error)
	FindByName(name string) (*model.ProductType, error)

	// DeleteCascade removes the product type together with its production
	// and sales rows in one transaction. The delete is permanent: the name
	// sits in a unique index and must be free for later re-registration,
	// and the children cannot outlive the type they reference.
	DeleteCascade(id uuid.UUID) error
}

type ProductionRepository interface {
	Create(p *model.Production) error
	Update(p *model.Production) error
	Delete(id uuid.UUID) error
	FindAll() ([]model.Production, error)
	FindByID(id uuid.UUID) (*model.Production, error)
}

type SaleRepository interface {
	Create(s *model.Sale) error
	Delete(id uuid.UUID) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
}

type productTypeRepo struct {
	db *gorm.DB
}

func NewProductTypeRepo(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepo{db}
}

func (r *productTypeRepo) Create(pt *model.ProductType) error {
	return r.db.Create(pt).Error
}

func (r *productTypeRepo) FindAll() ([]model.ProductType, error) {
	var types []model.ProductType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *productTypeRepo) FindByID(id uuid.UUID) (*model.ProductType, error) {
	var pt model.ProductType
	if err := r.db.First(&pt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *productTypeRepo) FindByName(name string) (*model.ProductType, error) {
	var pt model.ProductType
	if err := r.db.First(&pt, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *productTypeRepo) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("product_type_id = ?", id).Delete(&model.Production{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("product_type_id = ?", id).Delete(&model.Sale{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.ProductType{}, "id = ?", id).Error
	})
}

type productionRepo struct {
	db *gorm.DB
}

func NewProductionRepo(db *gorm.DB) ProductionRepository {
	return &productionRepo{db}
}

func (r *productionRepo) Create(p *model.Production) error {
	return r.db.Create(p).Error
}

func (r *productionRepo) Update(p *model.Production) error {
	return r.db.Save(p).Error
}

func (r *productionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Production{}, "id = ?", id).Error
}

func (r *productionRepo) FindAll() ([]model.Production, error) {
	var productions []model.Production
	err := r.db.Preload("ProductType").Order("date DESC").Find(&productions).Error
	return productions, err
}

func (r *productionRepo) FindByID(id uuid.UUID) (*model.Production, error) {
	var p model.Production
	if err := r.db.Preload("ProductType").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(s *model.Sale) error {
	return r.db.Create(s).Error
}

func (r *saleRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("ProductType").Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	if err := r.db.Preload("ProductType").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
