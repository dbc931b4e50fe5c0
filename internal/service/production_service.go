package service

import (
	"sort"
	"time"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductionService interface {
	AddProduction(req *AddProductionRequest, userID string) (*model.Production, error)
	GetProductions() ([]model.Production, error)
	DeleteProduction(id uuid.UUID) error

	AddSale(req *AddSaleRequest, userID string) (*model.Sale, error)
	GetSales() ([]model.Sale, error)
	DeleteSale(id uuid.UUID) error

	GetProductTypes() ([]model.ProductType, error)
	AddProductType(req *model.ProductType, userID string) error
	DeleteProductType(id uuid.UUID) error

	// ProductionReport groups recorded quantities by product and location.
	ProductionReport() ([]ProductionGroup, error)

	// SalesReport returns all sales with dual-currency grand totals.
	SalesReport() (*SalesSummary, error)
}

type AddProductionRequest struct {
	ProductTypeID *uuid.UUID `json:"product_type_id"`
	ProductName   string     `json:"product_name"` // used when no type id is given
	Location      string     `json:"location"`
	Quantity      float64    `json:"quantity" validate:"gte=0"`
	Unit          string     `json:"unit"`
	Date          time.Time  `json:"date"`
	Notes         string     `json:"notes"`
}

type AddSaleRequest struct {
	ProductTypeID uuid.UUID `json:"product_type_id" validate:"uuid_required"`
	Quantity      float64   `json:"quantity" validate:"gte=0"`
	Unit          string    `json:"unit"`
	PriceUSD      float64   `json:"price_per_unit_usd" validate:"gte=0"`
	PriceLBP      float64   `json:"price_per_unit_lbp" validate:"gte=0"`
	Date          time.Time `json:"date"`
	Notes         string    `json:"notes"`
}

// SalesSummary is the sales report: every sale plus grand totals per currency.
type SalesSummary struct {
	Sales      []model.Sale `json:"sales"`
	Count      int          `json:"count"`
	GrandTotal model.Money  `json:"grand_total"`
}

// ProductionGroup is one row of the grouped production report.
type ProductionGroup struct {
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Records     int     `json:"records"`
}

type productionService struct {
	productTypeRepo repository.ProductTypeRepository
	productionRepo  repository.ProductionRepository
	saleRepo        repository.SaleRepository
	logger          *zap.Logger
}

func NewProductionService(
	productTypeRepo repository.ProductTypeRepository,
	productionRepo repository.ProductionRepository,
	saleRepo repository.SaleRepository,
	logger *zap.Logger,
) ProductionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productionService{
		productTypeRepo: productTypeRepo,
		productionRepo:  productionRepo,
		saleRepo:        saleRepo,
		logger:          logger,
	}
}

// resolveProductType finds the referenced type, or creates one by name when
// only a free-text product name was submitted.
func (s *productionService) resolveProductType(id *uuid.UUID, name, userID string) (*model.ProductType, error) {
	if id != nil && *id != uuid.Nil {
		pt, err := s.productTypeRepo.FindByID(*id)
		if err != nil {
			return nil, apperr.NotFound("product type", *id)
		}
		return pt, nil
	}
	if name == "" {
		return nil, apperr.Validation("either product_type_id or product_name is required")
	}
	if pt, err := s.productTypeRepo.FindByName(name); err == nil {
		return pt, nil
	}
	pt := &model.ProductType{Name: name, Category: "أخرى"}
	pt.CreatedBy = userID
	pt.UpdatedBy = userID
	if err := s.productTypeRepo.Create(pt); err != nil {
		return nil, err
	}
	s.logger.Info("product type auto-created", zap.String("name", name))
	return pt, nil
}

func (s *productionService) AddProduction(req *AddProductionRequest, userID string) (*model.Production, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	pt, err := s.resolveProductType(req.ProductTypeID, req.ProductName, userID)
	if err != nil {
		return nil, err
	}

	production := &model.Production{
		ProductTypeID: pt.ID,
		Location:      req.Location,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		Date:          req.Date,
		Notes:         req.Notes,
	}
	if production.Unit == "" {
		production.Unit = "كجم"
	}
	if production.Date.IsZero() {
		production.Date = time.Now()
	}
	production.CreatedBy = userID
	production.UpdatedBy = userID

	if err := s.productionRepo.Create(production); err != nil {
		return nil, err
	}
	production.ProductType = pt
	return production, nil
}

func (s *productionService) GetProductions() ([]model.Production, error) {
	return s.productionRepo.FindAll()
}

func (s *productionService) DeleteProduction(id uuid.UUID) error {
	if _, err := s.productionRepo.FindByID(id); err != nil {
		return apperr.NotFound("production", id)
	}
	return s.productionRepo.Delete(id)
}

func (s *productionService) AddSale(req *AddSaleRequest, userID string) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	pt, err := s.productTypeRepo.FindByID(req.ProductTypeID)
	if err != nil {
		return nil, apperr.NotFound("product type", req.ProductTypeID)
	}

	price := model.NewMoney(req.PriceUSD, req.PriceLBP)
	sale := &model.Sale{
		ProductTypeID: pt.ID,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		PricePerUnit:  price,
		Total:         price.Scale(req.Quantity),
		Date:          req.Date,
		Notes:         req.Notes,
	}
	if sale.Unit == "" {
		sale.Unit = "كجم"
	}
	if sale.Date.IsZero() {
		sale.Date = time.Now()
	}
	sale.CreatedBy = userID
	sale.UpdatedBy = userID

	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	sale.ProductType = pt
	return sale, nil
}

func (s *productionService) GetSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *productionService) DeleteSale(id uuid.UUID) error {
	if _, err := s.saleRepo.FindByID(id); err != nil {
		return apperr.NotFound("sale", id)
	}
	return s.saleRepo.Delete(id)
}

func (s *productionService) GetProductTypes() ([]model.ProductType, error) {
	return s.productTypeRepo.FindAll()
}

func (s *productionService) AddProductType(req *model.ProductType, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
	}
	if _, err := s.productTypeRepo.FindByName(req.Name); err == nil {
		return apperr.Conflict("product type %q already exists", req.Name)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.productTypeRepo.Create(req)
}

func (s *productionService) DeleteProductType(id uuid.UUID) error {
	if _, err := s.productTypeRepo.FindByID(id); err != nil {
		return apperr.NotFound("product type", id)
	}
	return s.productTypeRepo.DeleteCascade(id)
}

func (s *productionService) ProductionReport() ([]ProductionGroup, error) {
	productions, err := s.productionRepo.FindAll()
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*ProductionGroup)
	for _, p := range productions {
		name, category := "-", "-"
		if p.ProductType != nil {
			name = p.ProductType.Name
			category = p.ProductType.Category
		}
		location := p.Location
		if location == "" {
			location = "-"
		}
		key := name + "|" + location
		group, ok := grouped[key]
		if !ok {
			group = &ProductionGroup{
				ProductName: name,
				Category:    category,
				Location:    location,
				Unit:        p.Unit,
			}
			grouped[key] = group
		}
		group.Quantity += p.Quantity
		group.Records++
	}

	result := make([]ProductionGroup, 0, len(grouped))
	for _, group := range grouped {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ProductName != result[j].ProductName {
			return result[i].ProductName < result[j].ProductName
		}
		return result[i].Location < result[j].Location
	})
	return result, nil
}

func (s *productionService) SalesReport() (*SalesSummary, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	total := model.ZeroMoney()
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	return &SalesSummary{
		Sales:      sales,
		Count:      len(sales),
		GrandTotal: total,
	}, nil
}
