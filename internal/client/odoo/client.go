package odoo

import (
	"context"
	"fmt"

	"github.com/kolo/xmlrpc"
	"go.uber.org/zap"

	"github.com/shestoi/storefront/internal/config"
)

// partnerModel - модель контрагента в Odoo
const partnerModel = "res.partner"

// partnerFields - поля, которые запрашиваются при поиске контрагентов
var partnerFields = []string{"name", "vat", "email", "street", "phone"}

// Partner представляет контрагента (res.partner) в реестре Odoo
// ID назначается реестром, эта система им не владеет
type Partner struct {
	ID     int
	Name   string
	Email  string
	VAT    string
	Street string
	Phone  string
}

// PartnerInput содержит поля для создания/обновления контрагента
// Пустые поля не отправляются в Odoo
type PartnerInput struct {
	Name   string
	Email  string
	VAT    string
	Street string
	Phone  string
}

// RemoteCallError возвращается при любой ошибке транспорта или протокола Odoo
// Несёт имя удалённого метода и исходную ошибку
type RemoteCallError struct {
	Method string
	Err    error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("odoo %s: %v", e.Method, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// Client реализует вызовы к реестру контрагентов Odoo через XML-RPC
// Каждая операция - один запрос execute_kw без retry и без локального состояния
// Тройка аутентификации (db, uid, password) передаётся в каждом вызове
type Client struct {
	logger *zap.Logger
	rpc    *xmlrpc.Client
	cfg    config.OdooConfig
}

// New создаёт новый Odoo клиент
// Клиент создаётся один раз при старте процесса и передаётся как зависимость
func New(logger *zap.Logger, cfg config.OdooConfig) (*Client, error) {
	rpc, err := xmlrpc.NewClient(cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create xmlrpc client: %w", err)
	}

	return &Client{
		logger: logger,
		rpc:    rpc,
		cfg:    cfg,
	}, nil
}

// SearchByEmail ищет контрагентов по точному совпадению email
func (c *Client) SearchByEmail(ctx context.Context, email string) ([]Partner, error) {
	filter := []interface{}{[]interface{}{"email", "=", email}}

	partners, err := c.searchRead(ctx, filter)
	if err != nil {
		c.logger.Error("Odoo search by email failed", zap.String("email", email), zap.Error(err))
		return nil, &RemoteCallError{Method: "search_read", Err: err}
	}

	c.logger.Info("Odoo partner search by email",
		zap.String("email", email),
		zap.Int("found", len(partners)))
	return partners, nil
}

// SearchByName ищет контрагентов по имени
// Оператор ilike в Odoo — case-insensitive поиск по подстроке
func (c *Client) SearchByName(ctx context.Context, name string) ([]Partner, error) {
	filter := []interface{}{[]interface{}{"name", "ilike", name}}

	partners, err := c.searchRead(ctx, filter)
	if err != nil {
		c.logger.Error("Odoo search by name failed", zap.String("name", name), zap.Error(err))
		return nil, &RemoteCallError{Method: "search_read", Err: err}
	}

	c.logger.Info("Odoo partner search by name",
		zap.String("name", name),
		zap.Int("found", len(partners)))
	return partners, nil
}

// Create создаёт нового контрагента в Odoo и возвращает его ID
func (c *Client) Create(ctx context.Context, input PartnerInput) (int, error) {
	var id int64
	err := c.executeKw(ctx, "create", []interface{}{input.fields()}, nil, &id)
	if err != nil {
		c.logger.Error("Odoo create partner failed", zap.String("name", input.Name), zap.Error(err))
		return 0, &RemoteCallError{Method: "create", Err: err}
	}

	c.logger.Info("Odoo partner created",
		zap.Int64("partner_id", id),
		zap.String("name", input.Name))
	return int(id), nil
}

// Update обновляет существующего контрагента в Odoo
// Передаются только заполненные поля input
func (c *Client) Update(ctx context.Context, partnerID int, input PartnerInput) error {
	var ack bool
	err := c.executeKw(ctx, "write", []interface{}{[]interface{}{partnerID}, input.fields()}, nil, &ack)
	if err != nil {
		c.logger.Error("Odoo update partner failed", zap.Int("partner_id", partnerID), zap.Error(err))
		return &RemoteCallError{Method: "write", Err: err}
	}

	c.logger.Info("Odoo partner updated", zap.Int("partner_id", partnerID))
	return nil
}

// searchRead выполняет search_read по res.partner с указанным фильтром
func (c *Client) searchRead(ctx context.Context, filter []interface{}) ([]Partner, error) {
	// Odoo возвращает false вместо пустых опциональных полей,
	// поэтому декодируем в map и преобразуем вручную
	var records []map[string]interface{}
	err := c.executeKw(ctx, "search_read",
		[]interface{}{filter},
		map[string]interface{}{"fields": partnerFields},
		&records)
	if err != nil {
		return nil, err
	}

	partners := make([]Partner, 0, len(records))
	for _, record := range records {
		partners = append(partners, Partner{
			ID:     asInt(record["id"]),
			Name:   asString(record["name"]),
			Email:  asString(record["email"]),
			VAT:    asString(record["vat"]),
			Street: asString(record["street"]),
			Phone:  asString(record["phone"]),
		})
	}
	return partners, nil
}

// executeKw выполняет вызов execute_kw с тройкой аутентификации
func (c *Client) executeKw(ctx context.Context, method string, args []interface{}, kwargs map[string]interface{}, result interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := []interface{}{
		c.cfg.DB,
		c.cfg.UID,
		c.cfg.Password,
		partnerModel,
		method,
		args,
	}
	if kwargs != nil {
		params = append(params, kwargs)
	}

	return c.rpc.Call("execute_kw", params, result)
}

// fields преобразует input в map для Odoo, пропуская пустые поля
func (in PartnerInput) fields() map[string]interface{} {
	fields := map[string]interface{}{
		"name": in.Name,
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.VAT != "" {
		fields["vat"] = in.VAT
	}
	if in.Street != "" {
		fields["street"] = in.Street
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	return fields
}

// asString извлекает строку из ответа Odoo
// Для пустых полей Odoo возвращает false, а не пустую строку
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt извлекает целое из ответа Odoo
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
