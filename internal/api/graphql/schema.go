package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/shestoi/storefront/internal/service"
)

// NewSchema собирает GraphQL схему из query/mutation полей аккаунтов и товаров
func NewSchema(accounts *service.AccountService, products *service.ProductService) (graphql.Schema, error) {
	accountRes := &accountResolvers{accounts: accounts}
	productRes := &productResolvers{products: products}

	queryFields := graphql.Fields{}
	mutationFields := graphql.Fields{}

	for name, field := range accountRes.queryFields() {
		queryFields[name] = field
	}
	for name, field := range productRes.queryFields() {
		queryFields[name] = field
	}
	for name, field := range accountRes.mutationFields() {
		mutationFields[name] = field
	}
	for name, field := range productRes.mutationFields() {
		mutationFields[name] = field
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: mutationFields,
		}),
	})
}

// argString извлекает строковый аргумент (пустая строка, если не задан)
func argString(p graphql.ResolveParams, key string) string {
	value, _ := p.Args[key].(string)
	return value
}

// argInt извлекает целочисленный аргумент с дефолтом
func argInt(p graphql.ResolveParams, key string, defaultValue int) int {
	value, ok := p.Args[key].(int)
	if !ok {
		return defaultValue
	}
	return value
}

// inputString извлекает строковое поле из input map
func inputString(input map[string]interface{}, key string) string {
	value, _ := input[key].(string)
	return value
}

// inputInt извлекает целочисленное поле из input map
func inputInt(input map[string]interface{}, key string) int {
	value, _ := input[key].(int)
	return value
}
