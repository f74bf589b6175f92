package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/shestoi/storefront/internal/repository"
	"github.com/shestoi/storefront/internal/repository/memory"
	repomocks "github.com/shestoi/storefront/internal/repository/mocks"
)

func newProductService(t *testing.T) (*ProductService, *repomocks.ProductRepository, *repomocks.AccountRepository) {
	mockProducts := repomocks.NewProductRepository(t)
	mockAccounts := repomocks.NewAccountRepository(t)
	svc := NewProductService(zap.NewNop(), mockProducts, mockAccounts)
	return svc, mockProducts, mockAccounts
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		input         CreateProductInput
		setupMock     func(*repomocks.ProductRepository)
		expectedError error
	}{
		{
			name:  "success",
			input: CreateProductInput{Name: "Widget", SKU: "W-1", Stock: 10},
			setupMock: func(m *repomocks.ProductRepository) {
				m.On("ExistsBySKU", ctx, "W-1").Return(false, nil).Once()
				m.On("Create", ctx, repository.Product{Name: "Widget", SKU: "W-1", Stock: 10}).
					Return(repository.Product{ID: primitive.NewObjectID().Hex(), Name: "Widget", SKU: "W-1", Stock: 10}, nil).Once()
			},
		},
		{
			name:          "missing name",
			input:         CreateProductInput{SKU: "W-1", Stock: 10},
			setupMock:     func(m *repomocks.ProductRepository) {},
			expectedError: ErrValidation,
		},
		{
			name:          "missing sku",
			input:         CreateProductInput{Name: "Widget", Stock: 10},
			setupMock:     func(m *repomocks.ProductRepository) {},
			expectedError: ErrValidation,
		},
		{
			name:          "negative stock",
			input:         CreateProductInput{Name: "Widget", SKU: "W-1", Stock: -1},
			setupMock:     func(m *repomocks.ProductRepository) {},
			expectedError: ErrValidation,
		},
		{
			name:  "duplicate sku detected by pre-check",
			input: CreateProductInput{Name: "Widget", SKU: "TAKEN", Stock: 10},
			setupMock: func(m *repomocks.ProductRepository) {
				m.On("ExistsBySKU", ctx, "TAKEN").Return(true, nil).Once()
			},
			expectedError: ErrConflict,
		},
		{
			name:  "duplicate sku detected by unique index",
			input: CreateProductInput{Name: "Widget", SKU: "RACED", Stock: 10},
			setupMock: func(m *repomocks.ProductRepository) {
				m.On("ExistsBySKU", ctx, "RACED").Return(false, nil).Once()
				m.On("Create", ctx, mock.Anything).Return(repository.Product{}, repository.ErrAlreadyExists).Once()
			},
			expectedError: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockProducts, _ := newProductService(t)
			tt.setupMock(mockProducts)

			product, err := svc.CreateProduct(ctx, tt.input)

			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				require.NotEmpty(t, product.ID)
			}
		})
	}
}

func TestProductService_ProductByID(t *testing.T) {
	ctx := context.Background()
	validID := primitive.NewObjectID().Hex()

	t.Run("malformed id never reaches the repository", func(t *testing.T) {
		svc, mockProducts, _ := newProductService(t)

		_, err := svc.ProductByID(ctx, "xyz")

		require.ErrorIs(t, err, ErrValidation)
		mockProducts.AssertNotCalled(t, "FindByID")
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockProducts, _ := newProductService(t)
		mockProducts.On("FindByID", ctx, validID).Return(repository.Product{}, repository.ErrNotFound).Once()

		_, err := svc.ProductByID(ctx, validID)

		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProductService_Purchase(t *testing.T) {
	ctx := context.Background()
	accountID := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID().Hex()

	t.Run("validation failures raise errors", func(t *testing.T) {
		svc, _, _ := newProductService(t)

		_, err := svc.Purchase(ctx, "bad", productID, 1)
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Purchase(ctx, accountID, "bad", 1)
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Purchase(ctx, accountID, productID, 0)
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Purchase(ctx, accountID, productID, -3)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing account yields failure result", func(t *testing.T) {
		svc, _, mockAccounts := newProductService(t)
		mockAccounts.On("FindByID", ctx, accountID).Return(repository.Account{}, repository.ErrNotFound).Once()

		result, err := svc.Purchase(ctx, accountID, productID, 1)

		require.NoError(t, err)
		require.False(t, result.Success)
		require.Equal(t, "account not found", result.Message)
		require.Nil(t, result.RemainingStock)
	})

	t.Run("missing product yields failure result", func(t *testing.T) {
		svc, mockProducts, mockAccounts := newProductService(t)
		mockAccounts.On("FindByID", ctx, accountID).Return(repository.Account{ID: accountID}, nil).Once()
		mockProducts.On("FindByID", ctx, productID).Return(repository.Product{}, repository.ErrNotFound).Once()

		result, err := svc.Purchase(ctx, accountID, productID, 1)

		require.NoError(t, err)
		require.False(t, result.Success)
		require.Equal(t, "product not found", result.Message)
	})

	t.Run("insufficient stock reports available vs requested", func(t *testing.T) {
		svc, mockProducts, mockAccounts := newProductService(t)
		mockAccounts.On("FindByID", ctx, accountID).Return(repository.Account{ID: accountID}, nil).Once()
		mockProducts.On("FindByID", ctx, productID).
			Return(repository.Product{ID: productID, Name: "Widget", Stock: 3}, nil).Twice()
		mockProducts.On("DecrementStock", ctx, productID, 5).
			Return(0, repository.ErrInsufficientStock).Once()

		result, err := svc.Purchase(ctx, accountID, productID, 5)

		require.NoError(t, err)
		require.False(t, result.Success)
		require.Equal(t, "insufficient stock: available 3, requested 5", result.Message)
		require.NotNil(t, result.RemainingStock)
		require.Equal(t, 3, *result.RemainingStock)
	})

	t.Run("successful purchase returns remaining stock", func(t *testing.T) {
		svc, mockProducts, mockAccounts := newProductService(t)
		mockAccounts.On("FindByID", ctx, accountID).Return(repository.Account{ID: accountID}, nil).Once()
		mockProducts.On("FindByID", ctx, productID).
			Return(repository.Product{ID: productID, Name: "Widget", Stock: 10}, nil).Once()
		mockProducts.On("DecrementStock", ctx, productID, 4).Return(6, nil).Once()

		result, err := svc.Purchase(ctx, accountID, productID, 4)

		require.NoError(t, err)
		require.True(t, result.Success)
		require.Equal(t, "purchase successful: sold 4 units of Widget", result.Message)
		require.Equal(t, 6, *result.RemainingStock)
	})
}

// TestProductService_Purchase_Sequential проверяет инвариант остатка
// на реальном in-memory хранилище: после серии последовательных покупок
// остаток равен начальному минус сумма успешных списаний,
// а отказ не меняет остаток
func TestProductService_Purchase_Sequential(t *testing.T) {
	ctx := context.Background()

	accountRepo := memory.NewAccountRepository()
	productRepo := memory.NewProductRepository()
	svc := NewProductService(zap.NewNop(), productRepo, accountRepo)

	account, err := accountRepo.Create(ctx, repository.Account{Name: "Buyer", Email: "buyer@example.com"})
	require.NoError(t, err)
	product, err := productRepo.Create(ctx, repository.Product{Name: "Widget", SKU: "W-1", Stock: 10})
	require.NoError(t, err)

	quantities := []int{3, 2, 4}
	sold := 0
	for _, q := range quantities {
		result, err := svc.Purchase(ctx, account.ID, product.ID, q)
		require.NoError(t, err)
		require.True(t, result.Success, fmt.Sprintf("purchase of %d should succeed", q))
		sold += q
		require.Equal(t, 10-sold, *result.RemainingStock)
	}

	// Остаток 1, запрос 2 - отказ без изменения остатка
	result, err := svc.Purchase(ctx, account.ID, product.ID, 2)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "insufficient stock: available 1, requested 2", result.Message)
	require.Equal(t, 1, *result.RemainingStock)

	fresh, err := productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, fresh.Stock)
}
