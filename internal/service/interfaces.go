package service

import (
	"context"

	"github.com/shestoi/storefront/internal/client/odoo"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=PartnerClient --dir=. --output=./mocks --outpkg=mocks

// PartnerClient определяет интерфейс клиента реестра контрагентов Odoo
// Service слой зависит от этого интерфейса, а не от конкретной XML-RPC реализации
type PartnerClient interface {
	// SearchByEmail ищет контрагентов по точному совпадению email
	SearchByEmail(ctx context.Context, email string) ([]odoo.Partner, error)

	// SearchByName ищет контрагентов по подстроке имени (case-insensitive)
	SearchByName(ctx context.Context, name string) ([]odoo.Partner, error)

	// Create создаёт нового контрагента и возвращает его ID
	Create(ctx context.Context, input odoo.PartnerInput) (int, error)

	// Update обновляет существующего контрагента
	Update(ctx context.Context, partnerID int, input odoo.PartnerInput) error
}
