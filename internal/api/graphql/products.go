package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/shestoi/storefront/internal/service"
)

// productResolvers - тонкий слой между GraphQL схемой и ProductService
type productResolvers struct {
	products *service.ProductService
}

// queryFields возвращает поля Query для товаров
func (r *productResolvers) queryFields() graphql.Fields {
	return graphql.Fields{
		"testProdQ": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.products.CountProducts(p.Context)
			},
		},
		"productById": &graphql.Field{
			Type: productType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.products.ProductByID(p.Context, argString(p, "id"))
			},
		},
		"products": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
			Args: graphql.FieldConfigArgument{
				"accountId": &graphql.ArgumentConfig{Type: graphql.String},
				"page":      &graphql.ArgumentConfig{Type: graphql.Int},
				"perPage":   &graphql.ArgumentConfig{Type: graphql.Int},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.products.Products(p.Context,
					argString(p, "accountId"),
					argInt(p, "page", 1),
					argInt(p, "perPage", 20))
			},
		},
	}
}

// mutationFields возвращает поля Mutation для товаров
func (r *productResolvers) mutationFields() graphql.Fields {
	return graphql.Fields{
		"testProdM": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return true, nil
			},
		},
		"createProduct": &graphql.Field{
			Type: productType,
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})
				return r.products.CreateProduct(p.Context, service.CreateProductInput{
					Name:      inputString(input, "name"),
					SKU:       inputString(input, "sku"),
					Stock:     inputInt(input, "stock"),
					AccountID: inputString(input, "accountId"),
				})
			},
		},
		"purchaseProduct": &graphql.Field{
			Type: graphql.NewNonNull(purchaseResultType),
			Args: graphql.FieldConfigArgument{
				"accountId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"quantity":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.products.Purchase(p.Context,
					argString(p, "accountId"),
					argString(p, "productId"),
					argInt(p, "quantity", 0))
			},
		},
	}
}
