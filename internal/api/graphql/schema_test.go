package graphql

import (
	"context"
	"fmt"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/storefront/internal/client/odoo"
	"github.com/shestoi/storefront/internal/repository"
	"github.com/shestoi/storefront/internal/repository/memory"
	"github.com/shestoi/storefront/internal/service"
	"github.com/shestoi/storefront/internal/service/mocks"
)

// newTestSchema собирает схему на реальных сервисах
// поверх in-memory репозиториев и mock клиента Odoo
func newTestSchema(t *testing.T) (graphql.Schema, *memory.AccountRepository, *memory.ProductRepository, *mocks.PartnerClient) {
	accountRepo := memory.NewAccountRepository()
	productRepo := memory.NewProductRepository()
	mockClient := mocks.NewPartnerClient(t)

	partners := service.NewPartnerService(zap.NewNop(), mockClient)
	accounts := service.NewAccountService(zap.NewNop(), accountRepo, partners, mockClient)
	products := service.NewProductService(zap.NewNop(), productRepo, accountRepo)

	schema, err := NewSchema(accounts, products)
	require.NoError(t, err)
	return schema, accountRepo, productRepo, mockClient
}

func execute(t *testing.T, schema graphql.Schema, query string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       context.Background(),
	})
}

func TestSchema_CreateAccount(t *testing.T) {
	schema, _, _, _ := newTestSchema(t)

	result := execute(t, schema, `mutation {
		createAccount(input: {name: "Alice", email: "alice@example.com"}) {
			_id
			name
			email
			createdAt
		}
	}`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	account := data["createAccount"].(map[string]interface{})
	require.NotEmpty(t, account["_id"])
	require.Equal(t, "Alice", account["name"])
	require.Equal(t, "alice@example.com", account["email"])
	require.NotEmpty(t, account["createdAt"])

	// Повторное создание с тем же email - GraphQL ошибка
	dup := execute(t, schema, `mutation {
		createAccount(input: {name: "Alice 2", email: "alice@example.com"}) { _id }
	}`)
	require.NotEmpty(t, dup.Errors)
	require.Contains(t, dup.Errors[0].Message, "already exists")
}

func TestSchema_AccountById(t *testing.T) {
	schema, accountRepo, _, _ := newTestSchema(t)

	account, err := accountRepo.Create(context.Background(), repository.Account{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	result := execute(t, schema, fmt.Sprintf(`{ accountById(id: %q) { _id name } }`, account.ID))
	require.Empty(t, result.Errors)
	found := result.Data.(map[string]interface{})["accountById"].(map[string]interface{})
	require.Equal(t, account.ID, found["_id"])

	// Некорректный ID - ValidationError как GraphQL ошибка
	bad := execute(t, schema, `{ accountById(id: "nope") { _id } }`)
	require.NotEmpty(t, bad.Errors)
	require.Contains(t, bad.Errors[0].Message, "invalid account id")
}

func TestSchema_AccountsPagination(t *testing.T) {
	schema, accountRepo, _, _ := newTestSchema(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := accountRepo.Create(ctx, repository.Account{
			Name:  fmt.Sprintf("Customer %d", i),
			Email: fmt.Sprintf("c%d@example.com", i),
		})
		require.NoError(t, err)
	}

	result := execute(t, schema, `{ accounts(name: "customer", page: 2, perPage: 3) { name } }`)
	require.Empty(t, result.Errors)
	accounts := result.Data.(map[string]interface{})["accounts"].([]interface{})
	require.Len(t, accounts, 2)

	count := execute(t, schema, `{ testAccQ }`)
	require.Empty(t, count.Errors)
	require.Equal(t, 5, count.Data.(map[string]interface{})["testAccQ"])
}

func TestSchema_SearchOdooClient(t *testing.T) {
	schema, _, _, mockClient := newTestSchema(t)

	mockClient.On("SearchByEmail", mock.Anything, "a@b.com").
		Return([]odoo.Partner{{ID: 1, Name: "Acme", Email: "a@b.com"}}, nil).Once()
	mockClient.On("SearchByName", mock.Anything, "Acme").
		Return([]odoo.Partner{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Acme Corp"}}, nil).Once()

	result := execute(t, schema, `{ searchOdooClient(email: "a@b.com", name: "Acme") { id name email } }`)
	require.Empty(t, result.Errors)

	clients := result.Data.(map[string]interface{})["searchOdooClient"].([]interface{})
	require.Len(t, clients, 2)
	first := clients[0].(map[string]interface{})
	require.Equal(t, 1, first["id"])
	require.Equal(t, "a@b.com", first["email"])
	second := clients[1].(map[string]interface{})
	require.Equal(t, 2, second["id"])
	// Пустые опциональные поля отдаются как null
	require.Nil(t, second["email"])

	// Без критериев - ошибка
	bad := execute(t, schema, `{ searchOdooClient { id } }`)
	require.NotEmpty(t, bad.Errors)
}

func TestSchema_SyncAccountWithOdoo(t *testing.T) {
	schema, accountRepo, _, mockClient := newTestSchema(t)

	account, err := accountRepo.Create(context.Background(), repository.Account{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	mockClient.On("SearchByEmail", mock.Anything, "alice@example.com").
		Return([]odoo.Partner{{ID: 77, Name: "Alice"}}, nil).Once()

	result := execute(t, schema, fmt.Sprintf(`mutation {
		syncAccountWithOdoo(accountId: %q) { success message clientId clientData { id } }
	}`, account.ID))
	require.Empty(t, result.Errors)

	sync := result.Data.(map[string]interface{})["syncAccountWithOdoo"].(map[string]interface{})
	require.Equal(t, true, sync["success"])
	require.Equal(t, 77, sync["clientId"])
	require.Nil(t, sync["clientData"])

	// Некорректный accountId - структурированный отказ, не GraphQL ошибка
	bad := execute(t, schema, `mutation { syncAccountWithOdoo(accountId: "nope") { success message clientId } }`)
	require.Empty(t, bad.Errors)
	badSync := bad.Data.(map[string]interface{})["syncAccountWithOdoo"].(map[string]interface{})
	require.Equal(t, false, badSync["success"])
	require.Nil(t, badSync["clientId"])
}

func TestSchema_CreateAndUpdateOdooClient(t *testing.T) {
	schema, _, _, mockClient := newTestSchema(t)

	mockClient.On("Create", mock.Anything, odoo.PartnerInput{Name: "Acme", Email: "acme@example.com"}).
		Return(15, nil).Once()
	mockClient.On("Update", mock.Anything, 15, odoo.PartnerInput{Name: "Acme", Phone: "+1234"}).
		Return(nil).Once()

	created := execute(t, schema, `mutation {
		createOdooClient(input: {name: "Acme", email: "acme@example.com"}) { success clientId }
	}`)
	require.Empty(t, created.Errors)
	createdResult := created.Data.(map[string]interface{})["createOdooClient"].(map[string]interface{})
	require.Equal(t, true, createdResult["success"])
	require.Equal(t, 15, createdResult["clientId"])

	updated := execute(t, schema, `mutation {
		updateOdooClient(clientId: 15, input: {name: "Acme", phone: "+1234"}) { success clientId }
	}`)
	require.Empty(t, updated.Errors)
	updatedResult := updated.Data.(map[string]interface{})["updateOdooClient"].(map[string]interface{})
	require.Equal(t, true, updatedResult["success"])
	require.Equal(t, 15, updatedResult["clientId"])
}

func TestSchema_ProductLifecycle(t *testing.T) {
	schema, accountRepo, _, _ := newTestSchema(t)
	ctx := context.Background()

	account, err := accountRepo.Create(ctx, repository.Account{Name: "Buyer", Email: "buyer@example.com"})
	require.NoError(t, err)

	created := execute(t, schema, `mutation {
		createProduct(input: {name: "Widget", sku: "W-1", stock: 10}) { _id name sku stock accountId }
	}`)
	require.Empty(t, created.Errors)
	product := created.Data.(map[string]interface{})["createProduct"].(map[string]interface{})
	require.Equal(t, "W-1", product["sku"])
	require.Equal(t, 10, product["stock"])
	require.Nil(t, product["accountId"])
	productID := product["_id"].(string)

	// Дубликат sku - GraphQL ошибка
	dup := execute(t, schema, `mutation {
		createProduct(input: {name: "Copy", sku: "W-1", stock: 1}) { _id }
	}`)
	require.NotEmpty(t, dup.Errors)

	// Отрицательный stock - GraphQL ошибка
	negative := execute(t, schema, `mutation {
		createProduct(input: {name: "Bad", sku: "B-1", stock: -1}) { _id }
	}`)
	require.NotEmpty(t, negative.Errors)

	// Покупка
	purchase := execute(t, schema, fmt.Sprintf(`mutation {
		purchaseProduct(accountId: %q, productId: %q, quantity: 4) { success message remainingStock }
	}`, account.ID, productID))
	require.Empty(t, purchase.Errors)
	purchaseResult := purchase.Data.(map[string]interface{})["purchaseProduct"].(map[string]interface{})
	require.Equal(t, true, purchaseResult["success"])
	require.Equal(t, 6, purchaseResult["remainingStock"])

	// Покупка сверх остатка - структурированный отказ
	oversell := execute(t, schema, fmt.Sprintf(`mutation {
		purchaseProduct(accountId: %q, productId: %q, quantity: 100) { success message remainingStock }
	}`, account.ID, productID))
	require.Empty(t, oversell.Errors)
	oversellResult := oversell.Data.(map[string]interface{})["purchaseProduct"].(map[string]interface{})
	require.Equal(t, false, oversellResult["success"])
	require.Equal(t, "insufficient stock: available 6, requested 100", oversellResult["message"])
	require.Equal(t, 6, oversellResult["remainingStock"])

	// Нулевое количество - GraphQL ошибка
	zero := execute(t, schema, fmt.Sprintf(`mutation {
		purchaseProduct(accountId: %q, productId: %q, quantity: 0) { success }
	}`, account.ID, productID))
	require.NotEmpty(t, zero.Errors)

	found := execute(t, schema, fmt.Sprintf(`{ productById(id: %q) { stock } }`, productID))
	require.Empty(t, found.Errors)
	require.Equal(t, 6, found.Data.(map[string]interface{})["productById"].(map[string]interface{})["stock"])

	smoke := execute(t, schema, `{ testProdQ }`)
	require.Empty(t, smoke.Errors)
	require.Equal(t, 1, smoke.Data.(map[string]interface{})["testProdQ"])
}
