package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shestoi/storefront/internal/repository"
)

// PurchaseResult - структурированный результат покупки
// Ожидаемые отказы (нет аккаунта/товара, нехватка остатка) возвращаются
// как Success=false с сообщением, а не как ошибка
type PurchaseResult struct {
	Success        bool
	Message        string
	RemainingStock *int
}

// CreateProductInput содержит входные данные для создания товара
type CreateProductInput struct {
	Name      string
	SKU       string
	Stock     int
	AccountID string
}

// ProductService содержит бизнес-логику работы с товарами
type ProductService struct {
	logger   *zap.Logger
	repo     repository.ProductRepository
	accounts repository.AccountRepository
}

// NewProductService создаёт новый ProductService
// Репозиторий аккаунтов нужен для проверки покупателя при покупке
func NewProductService(logger *zap.Logger, repo repository.ProductRepository, accounts repository.AccountRepository) *ProductService {
	return &ProductService{
		logger:   logger,
		repo:     repo,
		accounts: accounts,
	}
}

// CreateProduct создаёт новый товар
// Возвращает ErrValidation при пустом имени/sku или отрицательном остатке
// и ErrConflict, если товар с таким sku уже существует
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (repository.Product, error) {
	if input.Name == "" || input.SKU == "" {
		return repository.Product{}, fmt.Errorf("%w: name, sku and stock are required", ErrValidation)
	}
	if input.Stock < 0 {
		return repository.Product{}, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	// Проверка до вставки даёт понятное сообщение об ошибке,
	// гонку двух одновременных созданий закрывает уникальный индекс
	exists, err := s.repo.ExistsBySKU(ctx, input.SKU)
	if err != nil {
		s.logger.Error("Product sku check failed", zap.Error(err))
		return repository.Product{}, fmt.Errorf("create product: %w", err)
	}
	if exists {
		return repository.Product{}, fmt.Errorf("%w: product with this sku already exists", ErrConflict)
	}

	product, err := s.repo.Create(ctx, repository.Product{
		Name:      input.Name,
		SKU:       input.SKU,
		Stock:     input.Stock,
		AccountID: input.AccountID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.Product{}, fmt.Errorf("%w: product with this sku already exists", ErrConflict)
		}
		s.logger.Error("Product creation failed", zap.Error(err))
		return repository.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("sku", product.SKU))
	return product, nil
}

// ProductByID возвращает товар по ID
// Возвращает ErrValidation для некорректного ID (до обращения к хранилищу)
// и ErrNotFound, если товар отсутствует
func (s *ProductService) ProductByID(ctx context.Context, id string) (repository.Product, error) {
	if !repository.IsValidID(id) {
		return repository.Product{}, fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Product{}, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		s.logger.Error("Product lookup failed", zap.String("product_id", id), zap.Error(err))
		return repository.Product{}, fmt.Errorf("find product: %w", err)
	}

	return product, nil
}

// Products возвращает страницу товаров
// accountID - точный фильтр по владельцу (пустая строка = без фильтра)
// Некорректные page/perPage заменяются дефолтами 1/20
func (s *ProductService) Products(ctx context.Context, accountID string, page, perPage int) ([]repository.Product, error) {
	page, perPage = normalizePage(page, perPage)

	products, err := s.repo.Find(ctx, accountID, page, perPage)
	if err != nil {
		s.logger.Error("Product listing failed", zap.Error(err))
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CountProducts возвращает общее количество товаров
func (s *ProductService) CountProducts(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Product count failed", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// Purchase выполняет покупку товара аккаунтом
// Некорректные входные данные возвращаются как ErrValidation,
// ожидаемые отказы - как PurchaseResult с Success=false
// Списание остатка атомарное: остаток не может уйти в минус
// даже при конкурентных покупках одного товара
func (s *ProductService) Purchase(ctx context.Context, accountID, productID string, quantity int) (PurchaseResult, error) {
	if !repository.IsValidID(accountID) {
		return PurchaseResult{}, fmt.Errorf("%w: invalid account id", ErrValidation)
	}
	if !repository.IsValidID(productID) {
		return PurchaseResult{}, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	if quantity <= 0 {
		return PurchaseResult{}, fmt.Errorf("%w: quantity must be greater than 0", ErrValidation)
	}

	_, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PurchaseResult{Success: false, Message: "account not found"}, nil
		}
		s.logger.Error("Purchase failed: account lookup error", zap.String("account_id", accountID), zap.Error(err))
		return PurchaseResult{}, fmt.Errorf("purchase product: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PurchaseResult{Success: false, Message: "product not found"}, nil
		}
		s.logger.Error("Purchase failed: product lookup error", zap.String("product_id", productID), zap.Error(err))
		return PurchaseResult{}, fmt.Errorf("purchase product: %w", err)
	}

	remaining, err := s.repo.DecrementStock(ctx, productID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			// Перечитываем остаток: между FindByID и списанием он мог измениться
			current := product.Stock
			if fresh, freshErr := s.repo.FindByID(ctx, productID); freshErr == nil {
				current = fresh.Stock
			}
			s.logger.Info("Purchase rejected: insufficient stock",
				zap.String("product_id", productID),
				zap.Int("available", current),
				zap.Int("requested", quantity))
			return PurchaseResult{
				Success:        false,
				Message:        fmt.Sprintf("insufficient stock: available %d, requested %d", current, quantity),
				RemainingStock: &current,
			}, nil
		}
		if errors.Is(err, repository.ErrNotFound) {
			return PurchaseResult{Success: false, Message: "product not found"}, nil
		}
		s.logger.Error("Purchase failed: stock decrement error", zap.String("product_id", productID), zap.Error(err))
		return PurchaseResult{}, fmt.Errorf("purchase product: %w", err)
	}

	s.logger.Info("Purchase successful",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("remaining_stock", remaining))
	return PurchaseResult{
		Success:        true,
		Message:        fmt.Sprintf("purchase successful: sold %d units of %s", quantity, product.Name),
		RemainingStock: &remaining,
	}, nil
}
