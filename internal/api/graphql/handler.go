package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"go.uber.org/zap"

	"github.com/shestoi/storefront/internal/health"
)

// NewRouter возвращает роутер сервиса:
// POST /graphql - GraphQL endpoint (GraphiQL включается конфигом)
// GET  /healthz - health check (readiness = доступность MongoDB)
func NewRouter(logger *zap.Logger, schema graphql.Schema, readiness func() bool, enableGraphiQL bool) http.Handler {
	gql := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: enableGraphiQL,
	})

	mux := http.NewServeMux()
	mux.Handle("/graphql", gql)
	mux.Handle("/healthz", health.Handler(readiness))

	return WithRequestID(WithLogging(logger, mux))
}
