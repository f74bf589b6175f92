package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=AccountRepository --dir=. --output=./mocks --outpkg=mocks
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProductRepository --dir=. --output=./mocks --outpkg=mocks

// Account представляет аккаунт покупателя
// Email — бизнес-ключ, уникальность обеспечивается уникальным индексом в хранилище
type Account struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product представляет товар
// SKU — бизнес-ключ, уникальность обеспечивается уникальным индексом в хранилище
// AccountID — опциональная ссылка на аккаунт-владельца (пустая строка, если не задана)
type Product struct {
	ID        string
	Name      string
	SKU       string
	Stock     int
	AccountID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountRepository определяет интерфейс для работы с хранилищем аккаунтов
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type AccountRepository interface {
	// Create создаёт новый аккаунт и возвращает его с заполненным ID
	// Возвращает ErrAlreadyExists при нарушении уникальности email
	Create(ctx context.Context, account Account) (Account, error)

	// FindByID получает аккаунт по ID
	// Возвращает ErrNotFound, если аккаунт не найден
	FindByID(ctx context.Context, id string) (Account, error)

	// Find возвращает страницу аккаунтов
	// nameFilter — case-insensitive поиск по подстроке имени (пустая строка = без фильтра)
	// Пагинация skip/limit: пропускается (page-1)*perPage записей
	Find(ctx context.Context, nameFilter string, page, perPage int) ([]Account, error)

	// ExistsByEmail проверяет, существует ли аккаунт с указанным email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count возвращает общее количество аккаунтов
	Count(ctx context.Context) (int, error)
}

// ProductRepository определяет интерфейс для работы с хранилищем товаров
type ProductRepository interface {
	// Create создаёт новый товар и возвращает его с заполненным ID
	// Возвращает ErrAlreadyExists при нарушении уникальности sku
	Create(ctx context.Context, product Product) (Product, error)

	// FindByID получает товар по ID
	// Возвращает ErrNotFound, если товар не найден
	FindByID(ctx context.Context, id string) (Product, error)

	// Find возвращает страницу товаров
	// accountID — точный фильтр по владельцу (пустая строка = без фильтра)
	Find(ctx context.Context, accountID string, page, perPage int) ([]Product, error)

	// ExistsBySKU проверяет, существует ли товар с указанным sku
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// DecrementStock атомарно уменьшает остаток товара на quantity,
	// только если остаток достаточен (stock >= quantity)
	// Возвращает остаток после списания
	// Возвращает ErrInsufficientStock, если товара недостаточно,
	// и ErrNotFound, если товар не существует
	DecrementStock(ctx context.Context, id string, quantity int) (int, error)

	// Count возвращает общее количество товаров
	Count(ctx context.Context) (int, error)
}

// ErrNotFound возвращается, когда запись не найдена в хранилище
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists возвращается при нарушении уникальности бизнес-ключа (email/sku)
var ErrAlreadyExists = errors.New("record already exists")

// ErrInsufficientStock возвращается, когда остатка товара недостаточно для списания
var ErrInsufficientStock = errors.New("insufficient stock")

// IsValidID проверяет, что строка является корректным идентификатором записи
// Проверка выполняется до обращения к хранилищу
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
