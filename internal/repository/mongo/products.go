package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shestoi/storefront/internal/repository"
)

// ProductDocument представляет документ в коллекции products
type ProductDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	SKU       string             `bson:"sku"`
	Stock     int                `bson:"stock"`
	AccountID string             `bson:"account_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// ProductRepository реализует repository.ProductRepository используя MongoDB
type ProductRepository struct {
	col *mongo.Collection
}

// NewProductRepository создаёт новый MongoDB репозиторий товаров
// Создаёт уникальный индекс на sku при инициализации
func NewProductRepository(client *mongo.Client, dbName string) *ProductRepository {
	col := client.Database(dbName).Collection("products")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "sku", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Создаём индекс (если уже существует - игнорируем ошибку)
	_, _ = col.Indexes().CreateOne(ctx, indexModel)

	return &ProductRepository{col: col}
}

// Create создаёт новый товар в MongoDB
func (r *ProductRepository) Create(ctx context.Context, product repository.Product) (repository.Product, error) {
	now := time.Now()
	doc := ProductDocument{
		ID:        primitive.NewObjectID(),
		Name:      product.Name,
		SKU:       product.SKU,
		Stock:     product.Stock,
		AccountID: product.AccountID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		// Нарушение уникального индекса на sku
		if mongo.IsDuplicateKeyError(err) {
			return repository.Product{}, repository.ErrAlreadyExists
		}
		return repository.Product{}, err
	}

	return toProduct(doc), nil
}

// FindByID получает товар по ID из MongoDB
// Возвращает ErrNotFound, если товар не найден
func (r *ProductRepository) FindByID(ctx context.Context, id string) (repository.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.Product{}, repository.ErrNotFound
	}

	var doc ProductDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Product{}, repository.ErrNotFound
		}
		return repository.Product{}, err
	}

	return toProduct(doc), nil
}

// Find возвращает страницу товаров с опциональным точным фильтром по владельцу
func (r *ProductRepository) Find(ctx context.Context, accountID string, page, perPage int) ([]repository.Product, error) {
	filter := bson.M{}
	if accountID != "" {
		filter["account_id"] = accountID
	}

	skip := int64((page - 1) * perPage)
	opts := options.Find().SetSkip(skip).SetLimit(int64(perPage))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []ProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]repository.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, toProduct(doc))
	}
	return products, nil
}

// ExistsBySKU проверяет существование товара с указанным sku
func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"sku": sku}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DecrementStock атомарно списывает товар со склада
// Использует FindOneAndUpdate для атомарной проверки и обновления:
// уменьшить stock на quantity, только если stock >= quantity
// Благодаря этому конкурентные покупки не могут увести остаток в минус
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, repository.ErrNotFound
	}

	filter := bson.M{
		"_id":   oid,
		"stock": bson.M{"$gte": quantity}, // stock >= quantity
	}

	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After) // вернуть документ после обновления

	var updatedDoc ProductDocument
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedDoc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Либо товара нет, либо недостаточно остатка — различаем отдельным чтением
			findErr := r.col.FindOne(ctx, bson.M{"_id": oid}).Err()
			if errors.Is(findErr, mongo.ErrNoDocuments) {
				return 0, repository.ErrNotFound
			}
			if findErr != nil {
				return 0, findErr
			}
			return 0, repository.ErrInsufficientStock
		}
		return 0, err
	}

	return updatedDoc.Stock, nil
}

// Count возвращает общее количество товаров
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// toProduct преобразует MongoDB документ в модель repository слоя
func toProduct(doc ProductDocument) repository.Product {
	return repository.Product{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		SKU:       doc.SKU,
		Stock:     doc.Stock,
		AccountID: doc.AccountID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
