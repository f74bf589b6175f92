package graphql

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shestoi/storefront/internal/client/odoo"
	"github.com/shestoi/storefront/internal/repository"
	"github.com/shestoi/storefront/internal/service"
)

// GraphQL типы повторяют схему исходного API,
// включая имя поля _id у хранимых сущностей

// accountType - тип Account
var accountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Account",
	Fields: graphql.Fields{
		"_id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(repository.Account).ID, nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(repository.Account).Name, nil
			},
		},
		"email": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(repository.Account).Email, nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatTime(p.Source.(repository.Account).CreatedAt), nil
			},
		},
		"updatedAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatTime(p.Source.(repository.Account).UpdatedAt), nil
			},
		},
	},
})

// productType - тип Product
var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"_id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(repository.Product).ID, nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(repository.Product).Name, nil
			},
		},
		"sku": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(repository.Product).SKU, nil
			},
		},
		"stock": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(repository.Product).Stock, nil
			},
		},
		"accountId": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product := p.Source.(repository.Product)
				if product.AccountID == "" {
					return nil, nil
				}
				return product.AccountID, nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatTime(p.Source.(repository.Product).CreatedAt), nil
			},
		},
		"updatedAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatTime(p.Source.(repository.Product).UpdatedAt), nil
			},
		},
	},
})

// odooClientType - тип OdooClient (контрагент в реестре Odoo)
var odooClientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OdooClient",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(odoo.Partner).ID, nil
			},
		},
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(odoo.Partner).Name, nil
			},
		},
		"email": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nullableString(p.Source.(odoo.Partner).Email), nil
			},
		},
		"vat": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nullableString(p.Source.(odoo.Partner).VAT), nil
			},
		},
		"street": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nullableString(p.Source.(odoo.Partner).Street), nil
			},
		},
		"phone": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nullableString(p.Source.(odoo.Partner).Phone), nil
			},
		},
	},
})

// odooResultType - тип OdooResult (результат sync-операций)
var odooResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OdooResult",
	Fields: graphql.Fields{
		"success": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(service.SyncResult).Success, nil
			},
		},
		"message": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(service.SyncResult).Message, nil
			},
		},
		"clientId": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				result := p.Source.(service.SyncResult)
				if result.ClientID == nil {
					return nil, nil
				}
				return *result.ClientID, nil
			},
		},
		"clientData": &graphql.Field{
			Type: odooClientType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				result := p.Source.(service.SyncResult)
				if result.ClientData == nil {
					return nil, nil
				}
				return *result.ClientData, nil
			},
		},
	},
})

// purchaseResultType - тип PurchaseResult
var purchaseResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PurchaseResult",
	Fields: graphql.Fields{
		"success": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(service.PurchaseResult).Success, nil
			},
		},
		"message": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(service.PurchaseResult).Message, nil
			},
		},
		"remainingStock": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				result := p.Source.(service.PurchaseResult)
				if result.RemainingStock == nil {
					return nil, nil
				}
				return *result.RemainingStock, nil
			},
		},
	},
})

// accountInputType - input AccountInput
var accountInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AccountInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

// productInputType - input ProductInput
var productInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"sku":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"stock":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"accountId": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// odooClientInputType - input OdooClientInput
var odooClientInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OdooClientInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"vat":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"street": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"phone":  &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// formatTime форматирует timestamp для GraphQL ответа
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// nullableString возвращает nil для пустой строки
// GraphQL клиенты исходного API ожидают null, а не ""
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
