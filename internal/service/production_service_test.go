package service

import (
	"errors"
	"testing"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductionService(t *testing.T, db *gorm.DB) ProductionService {
	t.Helper()
	return NewProductionService(
		repository.NewProductTypeRepo(db),
		repository.NewProductionRepo(db),
		repository.NewSaleRepo(db),
		nil,
	)
}

func TestAddProductionAutoCreatesType(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	production, err := svc.AddProduction(&AddProductionRequest{
		ProductName: "تفاح",
		Location:    model.LocationMountain,
		Quantity:    120,
	}, "tester")
	require.NoError(t, err)
	require.NotNil(t, production.ProductType)
	assert.Equal(t, "تفاح", production.ProductType.Name)

	// A second record for the same name reuses the type.
	again, err := svc.AddProduction(&AddProductionRequest{
		ProductName: "تفاح",
		Location:    model.LocationPlain,
		Quantity:    80,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, production.ProductTypeID, again.ProductTypeID)

	types, err := svc.GetProductTypes()
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestAddProductionNeedsTypeOrName(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	_, err := svc.AddProduction(&AddProductionRequest{Quantity: 10}, "tester")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestSaleTotalComputed(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	pt := &model.ProductType{Name: "بيض", Category: "دواجن"}
	require.NoError(t, svc.AddProductType(pt, "tester"))

	sale, err := svc.AddSale(&AddSaleRequest{
		ProductTypeID: pt.ID,
		Quantity:      30,
		PriceUSD:      0.2,
		PriceLBP:      18000,
	}, "tester")
	require.NoError(t, err)

	assert.True(t, sale.Total.USD.Equal(decimal.NewFromInt(6)))
	assert.True(t, sale.Total.LBP.Equal(decimal.NewFromInt(540000)))
}

func TestDuplicateProductTypeRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	require.NoError(t, svc.AddProductType(&model.ProductType{Name: "حليب"}, "tester"))
	err := svc.AddProductType(&model.ProductType{Name: "حليب"}, "tester")
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestProductionReportGroups(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	for _, rec := range []struct {
		name     string
		location string
		qty      float64
	}{
		{"تفاح", model.LocationMountain, 100},
		{"تفاح", model.LocationMountain, 50},
		{"تفاح", model.LocationPlain, 30},
	} {
		_, err := svc.AddProduction(&AddProductionRequest{
			ProductName: rec.name,
			Location:    rec.location,
			Quantity:    rec.qty,
		}, "tester")
		require.NoError(t, err)
	}

	groups, err := svc.ProductionReport()
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byLocation := map[string]ProductionGroup{}
	for _, g := range groups {
		byLocation[g.Location] = g
	}
	assert.Equal(t, 150.0, byLocation[model.LocationMountain].Quantity)
	assert.Equal(t, 2, byLocation[model.LocationMountain].Records)
	assert.Equal(t, 30.0, byLocation[model.LocationPlain].Quantity)
}

func TestDeleteProductTypeCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	production, err := svc.AddProduction(&AddProductionRequest{
		ProductName: "عنب",
		Quantity:    40,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProductType(production.ProductTypeID))

	productions, err := svc.GetProductions()
	require.NoError(t, err)
	assert.Empty(t, productions)
}

func TestProductTypeNameReusableAfterDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	pt := &model.ProductType{Name: "دراق", Category: "فواكه"}
	require.NoError(t, svc.AddProductType(pt, "tester"))
	require.NoError(t, svc.DeleteProductType(pt.ID))

	// A production record under the freed name auto-creates the type again.
	production, err := svc.AddProduction(&AddProductionRequest{
		ProductName: "دراق",
		Quantity:    25,
	}, "tester")
	require.NoError(t, err)
	require.NotNil(t, production.ProductType)
	assert.Equal(t, "دراق", production.ProductType.Name)
	assert.NotEqual(t, pt.ID, production.ProductTypeID)

	types, err := svc.GetProductTypes()
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestSalesReportTotals(t *testing.T) {
	db := newTestDB(t)
	svc := newProductionService(t, db)

	production, err := svc.AddProduction(&AddProductionRequest{
		ProductName: "تفاح",
		Quantity:    100,
	}, "tester")
	require.NoError(t, err)

	for _, sale := range []struct {
		qty, usd, lbp float64
	}{
		{30, 0.2, 18000},
		{20, 0.5, 45000},
	} {
		_, err := svc.AddSale(&AddSaleRequest{
			ProductTypeID: production.ProductTypeID,
			Quantity:      sale.qty,
			PriceUSD:      sale.usd,
			PriceLBP:      sale.lbp,
		}, "tester")
		require.NoError(t, err)
	}

	summary, err := svc.SalesReport()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Len(t, summary.Sales, 2)

	// 30x0.2 + 20x0.5 = 16 USD; 30x18000 + 20x45000 = 1,440,000 LBP.
	assert.True(t, summary.GrandTotal.USD.Equal(decimal.NewFromInt(16)))
	assert.True(t, summary.GrandTotal.LBP.Equal(decimal.NewFromInt(1440000)))
}
