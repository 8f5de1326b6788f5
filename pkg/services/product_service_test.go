package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frostline-foods/frostline-admin/pkg/models"
)

func newProductServiceForTest(t *testing.T) (ProductService, *mockProductRepository, *mockAuditRepository) {
	t.Helper()
	repo := newMockProductRepository()
	auditRepo := &mockAuditRepository{}
	audit := NewAuditService(auditRepo, newMockAdminRepository(), zap.NewNop())
	return NewProductService(repo, audit, zap.NewNop()), repo, auditRepo
}

func TestProductService_Create_DerivesStatus(t *testing.T) {
	tests := []struct {
		name       string
		stockKg    float64
		wantStatus string
	}{
		{"healthy stock", 50, models.ProductInStock},
		{"at threshold", 10, models.ProductLowStock},
		{"empty", 0, models.ProductOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newProductServiceForTest(t)

			product := &models.Product{
				Name:              "Pork Belly",
				PricingType:       models.PricingPerKilo,
				StockKg:           tt.stockKg,
				LowStockThreshold: 10,
				IsActive:          true,
			}
			require.NoError(t, svc.Create(context.Background(), product))
			assert.Equal(t, tt.wantStatus, product.ProductStatus)
		})
	}
}

func TestProductService_Create_PerBoxStock(t *testing.T) {
	svc, _, _ := newProductServiceForTest(t)

	product := &models.Product{
		Name:              "Chicken Nuggets",
		PricingType:       models.PricingPerBox,
		BoxesInStock:      4,
		KgPerBox:          5,
		LowStockThreshold: 10,
		IsActive:          true,
	}
	require.NoError(t, svc.Create(context.Background(), product))
	assert.Equal(t, models.ProductInStock, product.ProductStatus)
}

func TestProductService_Update_AuditsPriceChange(t *testing.T) {
	svc, repo, auditRepo := newProductServiceForTest(t)

	product := &models.Product{
		ID:                uuid.New(),
		Name:              "Pork Belly",
		PricingType:       models.PricingPerKilo,
		Price:             320,
		StockKg:           50,
		LowStockThreshold: 10,
		IsActive:          true,
		ProductStatus:     models.ProductInStock,
	}
	repo.products[product.ID] = product

	edited := *product
	edited.Price = 350
	require.NoError(t, svc.Update(context.Background(), &edited))

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	require.NotNil(t, entry.ChangeSummary)
	assert.Equal(t, "Updated products", *entry.ChangeSummary)
	require.Len(t, entry.FieldChanges, 1)
	assert.Equal(t, `Price changed from "₱320.00" to "₱350.00"`, entry.FieldChanges[0].Description)
}

func TestProductService_Delete_Audited(t *testing.T) {
	svc, repo, auditRepo := newProductServiceForTest(t)

	product := &models.Product{ID: uuid.New(), Name: "Pork Belly", PricingType: models.PricingPerKilo, IsActive: true}
	repo.products[product.ID] = product

	require.NoError(t, svc.Delete(context.Background(), product.ID))
	assert.Empty(t, repo.products)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, models.AuditActionDelete, auditRepo.entries[0].Action)
}
