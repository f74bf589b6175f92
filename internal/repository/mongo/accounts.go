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

// AccountDocument представляет документ в коллекции accounts
type AccountDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// AccountRepository реализует repository.AccountRepository используя MongoDB
type AccountRepository struct {
	col *mongo.Collection
}

// NewAccountRepository создаёт новый MongoDB репозиторий аккаунтов
// Создаёт уникальный индекс на email при инициализации
func NewAccountRepository(client *mongo.Client, dbName string) *AccountRepository {
	col := client.Database(dbName).Collection("accounts")

	// Уникальный индекс гарантирует уникальность email на уровне БД,
	// а не только на уровне проверки перед вставкой
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Создаём индекс (если уже существует - игнорируем ошибку)
	_, _ = col.Indexes().CreateOne(ctx, indexModel)

	return &AccountRepository{col: col}
}

// Create создаёт новый аккаунт в MongoDB
// Timestamps выставляются здесь, а не в бизнес-логике
func (r *AccountRepository) Create(ctx context.Context, account repository.Account) (repository.Account, error) {
	now := time.Now()
	doc := AccountDocument{
		ID:        primitive.NewObjectID(),
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		// Нарушение уникального индекса на email
		if mongo.IsDuplicateKeyError(err) {
			return repository.Account{}, repository.ErrAlreadyExists
		}
		return repository.Account{}, err
	}

	return toAccount(doc), nil
}

// FindByID получает аккаунт по ID из MongoDB
// Возвращает ErrNotFound, если аккаунт не найден
func (r *AccountRepository) FindByID(ctx context.Context, id string) (repository.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.Account{}, repository.ErrNotFound
	}

	var doc AccountDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.Account{}, repository.ErrNotFound
		}
		return repository.Account{}, err
	}

	return toAccount(doc), nil
}

// Find возвращает страницу аккаунтов с опциональным фильтром по имени
// Фильтр — case-insensitive regex по подстроке, как в исходной модели данных
func (r *AccountRepository) Find(ctx context.Context, nameFilter string, page, perPage int) ([]repository.Account, error) {
	filter := bson.M{}
	if nameFilter != "" {
		filter["name"] = primitive.Regex{Pattern: nameFilter, Options: "i"}
	}

	skip := int64((page - 1) * perPage)
	opts := options.Find().SetSkip(skip).SetLimit(int64(perPage))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []AccountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	accounts := make([]repository.Account, 0, len(docs))
	for _, doc := range docs {
		accounts = append(accounts, toAccount(doc))
	}
	return accounts, nil
}

// ExistsByEmail проверяет существование аккаунта с указанным email
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count возвращает общее количество аккаунтов
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// toAccount преобразует MongoDB документ в модель repository слоя
func toAccount(doc AccountDocument) repository.Account {
	return repository.Account{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Email:     doc.Email,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
