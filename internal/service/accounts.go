package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shestoi/storefront/internal/client/odoo"
	"github.com/shestoi/storefront/internal/repository"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
)

// SyncResult - структурированный результат Odoo-операций
// Sync-операции никогда не возвращают ошибку вызывающему:
// любой сбой конвертируется в Success=false с сообщением
// ClientData зарезервировано и всегда nil в текущем поведении
type SyncResult struct {
	Success    bool
	Message    string
	ClientID   *int
	ClientData *odoo.Partner
}

// AccountService содержит бизнес-логику работы с аккаунтами
// и операции синхронизации с реестром контрагентов Odoo
type AccountService struct {
	logger   *zap.Logger
	repo     repository.AccountRepository
	partners *PartnerService
	client   PartnerClient
}

// NewAccountService создаёт новый AccountService
func NewAccountService(logger *zap.Logger, repo repository.AccountRepository, partners *PartnerService, client PartnerClient) *AccountService {
	return &AccountService{
		logger:   logger,
		repo:     repo,
		partners: partners,
		client:   client,
	}
}

// CreateAccount создаёт новый аккаунт
// Возвращает ErrValidation при пустом имени или email
// и ErrConflict, если аккаунт с таким email уже существует
func (s *AccountService) CreateAccount(ctx context.Context, name, email string) (repository.Account, error) {
	if name == "" || email == "" {
		return repository.Account{}, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	// Проверка до вставки даёт понятное сообщение об ошибке,
	// гонку двух одновременных созданий закрывает уникальный индекс
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Account email check failed", zap.Error(err))
		return repository.Account{}, fmt.Errorf("create account: %w", err)
	}
	if exists {
		return repository.Account{}, fmt.Errorf("%w: account with this email already exists", ErrConflict)
	}

	account, err := s.repo.Create(ctx, repository.Account{Name: name, Email: email})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return repository.Account{}, fmt.Errorf("%w: account with this email already exists", ErrConflict)
		}
		s.logger.Error("Account creation failed", zap.Error(err))
		return repository.Account{}, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("Account created", zap.String("account_id", account.ID))
	return account, nil
}

// AccountByID возвращает аккаунт по ID
// Возвращает ErrValidation для некорректного ID (до обращения к хранилищу)
// и ErrNotFound, если аккаунт отсутствует
func (s *AccountService) AccountByID(ctx context.Context, id string) (repository.Account, error) {
	if !repository.IsValidID(id) {
		return repository.Account{}, fmt.Errorf("%w: invalid account id", ErrValidation)
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Account{}, fmt.Errorf("%w: account not found", ErrNotFound)
		}
		s.logger.Error("Account lookup failed", zap.String("account_id", id), zap.Error(err))
		return repository.Account{}, fmt.Errorf("find account: %w", err)
	}

	return account, nil
}

// Accounts возвращает страницу аккаунтов
// nameFilter - case-insensitive поиск по подстроке имени (пустая строка = без фильтра)
// Некорректные page/perPage заменяются дефолтами 1/20
func (s *AccountService) Accounts(ctx context.Context, nameFilter string, page, perPage int) ([]repository.Account, error) {
	page, perPage = normalizePage(page, perPage)

	accounts, err := s.repo.Find(ctx, nameFilter, page, perPage)
	if err != nil {
		s.logger.Error("Account listing failed", zap.Error(err))
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// CountAccounts возвращает общее количество аккаунтов
func (s *AccountService) CountAccounts(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Account count failed", zap.Error(err))
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

// SyncWithOdoo синхронизирует аккаунт с реестром контрагентов Odoo
// Загружает аккаунт и выполняет find-or-create сверку по его имени/email
// Соответствие аккаунт -> контрагент нигде не сохраняется:
// каждая синхронизация заново разрешает контрагента
// Никогда не возвращает ошибку - любой сбой конвертируется в Success=false
func (s *AccountService) SyncWithOdoo(ctx context.Context, accountID string) SyncResult {
	if !repository.IsValidID(accountID) {
		s.logger.Warn("Account sync rejected: invalid id", zap.String("account_id", accountID))
		return SyncResult{Success: false, Message: "invalid account id"}
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Account sync rejected: not found", zap.String("account_id", accountID))
			return SyncResult{Success: false, Message: "account not found"}
		}
		s.logger.Error("Account sync failed: lookup error", zap.String("account_id", accountID), zap.Error(err))
		return SyncResult{Success: false, Message: "failed to sync account with Odoo"}
	}

	partnerID, err := s.partners.FindOrCreate(ctx, account.Name, account.Email)
	if err != nil {
		s.logger.Error("Account sync failed", zap.String("account_id", accountID), zap.Error(err))
		return SyncResult{Success: false, Message: "failed to sync account with Odoo"}
	}

	s.logger.Info("Account synchronized with Odoo",
		zap.String("account_id", accountID),
		zap.Int("partner_id", partnerID))
	return SyncResult{
		Success:  true,
		Message:  "account synchronized with Odoo",
		ClientID: &partnerID,
	}
}

// CreateOdooClient создаёт контрагента в Odoo напрямую, без локальной записи
// Сбой конвертируется в Success=false
func (s *AccountService) CreateOdooClient(ctx context.Context, input odoo.PartnerInput) SyncResult {
	partnerID, err := s.client.Create(ctx, input)
	if err != nil {
		s.logger.Error("Odoo client creation failed", zap.Error(err))
		return SyncResult{Success: false, Message: "failed to create client in Odoo"}
	}

	return SyncResult{
		Success:  true,
		Message:  "client created in Odoo",
		ClientID: &partnerID,
	}
}

// UpdateOdooClient обновляет контрагента в Odoo
// Сбой конвертируется в Success=false
func (s *AccountService) UpdateOdooClient(ctx context.Context, clientID int, input odoo.PartnerInput) SyncResult {
	if err := s.client.Update(ctx, clientID, input); err != nil {
		s.logger.Error("Odoo client update failed", zap.Int("client_id", clientID), zap.Error(err))
		return SyncResult{Success: false, Message: "failed to update client in Odoo"}
	}

	return SyncResult{
		Success:  true,
		Message:  "client updated in Odoo",
		ClientID: &clientID,
	}
}

// SearchOdooClient ищет контрагентов в Odoo по email и/или имени
// В отличие от sync-операций возвращает ошибку вызывающему
func (s *AccountService) SearchOdooClient(ctx context.Context, email, name string) ([]odoo.Partner, error) {
	return s.partners.Search(ctx, email, name)
}

// normalizePage заменяет некорректные значения пагинации дефолтами
func normalizePage(page, perPage int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return page, perPage
}
