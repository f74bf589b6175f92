package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shestoi/storefront/internal/repository"
)

// AccountRepository реализует repository.AccountRepository используя in-memory хранилище
// Используется для разработки и тестирования
// В production заменяется реализацией с MongoDB
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]repository.Account
}

// NewAccountRepository создаёт новый in-memory репозиторий аккаунтов
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]repository.Account),
	}
}

// Create создаёт новый аккаунт в памяти
// Проверка уникальности email и вставка выполняются под одним мьютексом
func (r *AccountRepository) Create(ctx context.Context, account repository.Account) (repository.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return repository.Account{}, repository.ErrAlreadyExists
		}
	}

	now := time.Now()
	account.ID = primitive.NewObjectID().Hex()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.accounts[account.ID] = account

	return account, nil
}

// FindByID получает аккаунт по ID из памяти
func (r *AccountRepository) FindByID(ctx context.Context, id string) (repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[id]
	if !exists {
		return repository.Account{}, repository.ErrNotFound
	}
	return account, nil
}

// Find возвращает страницу аккаунтов с опциональным фильтром по имени
// Результаты сортируются по времени создания для стабильной пагинации
func (r *AccountRepository) Find(ctx context.Context, nameFilter string, page, perPage int) ([]repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]repository.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		if nameFilter != "" && !strings.Contains(strings.ToLower(account.Name), strings.ToLower(nameFilter)) {
			continue
		}
		matched = append(matched, account)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return paginate(matched, page, perPage), nil
}

// ExistsByEmail проверяет существование аккаунта с указанным email
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Count возвращает общее количество аккаунтов
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts), nil
}

// ProductRepository реализует repository.ProductRepository используя in-memory хранилище
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]repository.Product
}

// NewProductRepository создаёт новый in-memory репозиторий товаров
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]repository.Product),
	}
}

// Create создаёт новый товар в памяти
// Проверка уникальности sku и вставка выполняются под одним мьютексом
func (r *ProductRepository) Create(ctx context.Context, product repository.Product) (repository.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return repository.Product{}, repository.ErrAlreadyExists
		}
	}

	now := time.Now()
	product.ID = primitive.NewObjectID().Hex()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = product

	return product, nil
}

// FindByID получает товар по ID из памяти
func (r *ProductRepository) FindByID(ctx context.Context, id string) (repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return repository.Product{}, repository.ErrNotFound
	}
	return product, nil
}

// Find возвращает страницу товаров с опциональным точным фильтром по владельцу
func (r *ProductRepository) Find(ctx context.Context, accountID string, page, perPage int) ([]repository.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]repository.Product, 0, len(r.products))
	for _, product := range r.products {
		if accountID != "" && product.AccountID != accountID {
			continue
		}
		matched = append(matched, product)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	return paginate(matched, page, perPage), nil
}

// ExistsBySKU проверяет существование товара с указанным sku
func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

// DecrementStock списывает товар со склада
// Проверка остатка и списание выполняются под одним мьютексом,
// поэтому конкурентные покупки не могут увести остаток в минус
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[id]
	if !exists {
		return 0, repository.ErrNotFound
	}

	if product.Stock < quantity {
		return 0, repository.ErrInsufficientStock
	}

	product.Stock -= quantity
	product.UpdatedAt = time.Now()
	r.products[id] = product

	return product.Stock, nil
}

// Count возвращает общее количество товаров
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

// paginate возвращает страницу из отсортированного среза
// Пагинация skip/limit: пропускается (page-1)*perPage элементов
func paginate[T any](items []T, page, perPage int) []T {
	skip := (page - 1) * perPage
	if skip >= len(items) {
		return []T{}
	}
	end := skip + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
