package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/shestoi/storefront/internal/client/odoo"
	"github.com/shestoi/storefront/internal/service"
)

// accountResolvers - тонкий слой между GraphQL схемой и AccountService
// Только извлекает аргументы и вызывает service, без бизнес-логики
type accountResolvers struct {
	accounts *service.AccountService
}

// queryFields возвращает поля Query для аккаунтов и поиска в Odoo
func (r *accountResolvers) queryFields() graphql.Fields {
	return graphql.Fields{
		"testAccQ": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.accounts.CountAccounts(p.Context)
			},
		},
		"accountById": &graphql.Field{
			Type: accountType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.accounts.AccountByID(p.Context, argString(p, "id"))
			},
		},
		"accounts": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(accountType))),
			Args: graphql.FieldConfigArgument{
				"name":    &graphql.ArgumentConfig{Type: graphql.String},
				"page":    &graphql.ArgumentConfig{Type: graphql.Int},
				"perPage": &graphql.ArgumentConfig{Type: graphql.Int},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.accounts.Accounts(p.Context,
					argString(p, "name"),
					argInt(p, "page", 1),
					argInt(p, "perPage", 20))
			},
		},
		"searchOdooClient": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(odooClientType))),
			Args: graphql.FieldConfigArgument{
				"email": &graphql.ArgumentConfig{Type: graphql.String},
				"name":  &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.accounts.SearchOdooClient(p.Context,
					argString(p, "email"),
					argString(p, "name"))
			},
		},
	}
}

// mutationFields возвращает поля Mutation для аккаунтов и Odoo-операций
func (r *accountResolvers) mutationFields() graphql.Fields {
	return graphql.Fields{
		"testAccM": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return true, nil
			},
		},
		"createAccount": &graphql.Field{
			Type: accountType,
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(accountInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})
				return r.accounts.CreateAccount(p.Context,
					inputString(input, "name"),
					inputString(input, "email"))
			},
		},
		"createOdooClient": &graphql.Field{
			Type: graphql.NewNonNull(odooResultType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(odooClientInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})
				return r.accounts.CreateOdooClient(p.Context, partnerInput(input)), nil
			},
		},
		"updateOdooClient": &graphql.Field{
			Type: graphql.NewNonNull(odooResultType),
			Args: graphql.FieldConfigArgument{
				"clientId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"input":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(odooClientInputType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})
				return r.accounts.UpdateOdooClient(p.Context,
					argInt(p, "clientId", 0),
					partnerInput(input)), nil
			},
		},
		"syncAccountWithOdoo": &graphql.Field{
			Type: graphql.NewNonNull(odooResultType),
			Args: graphql.FieldConfigArgument{
				"accountId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.accounts.SyncWithOdoo(p.Context, argString(p, "accountId")), nil
			},
		},
	}
}

// partnerInput собирает odoo.PartnerInput из GraphQL input map
func partnerInput(input map[string]interface{}) odoo.PartnerInput {
	return odoo.PartnerInput{
		Name:   inputString(input, "name"),
		Email:  inputString(input, "email"),
		VAT:    inputString(input, "vat"),
		Street: inputString(input, "street"),
		Phone:  inputString(input, "phone"),
	}
}
