package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shestoi/storefront/internal/client/odoo"
)

// PartnerService выполняет сверку локальных аккаунтов с реестром контрагентов Odoo
// Не хранит состояние: каждая сверка заново проходит поиск в реестре
type PartnerService struct {
	logger *zap.Logger
	client PartnerClient
}

// NewPartnerService создаёт новый PartnerService
func NewPartnerService(logger *zap.Logger, client PartnerClient) *PartnerService {
	return &PartnerService{
		logger: logger,
		client: client,
	}
}

// FindOrCreate находит существующего контрагента или создаёт нового
// Порядок разрешения, с остановкой на первом успехе:
//  1. поиск по email (если email задан) - берётся первое совпадение
//  2. поиск по имени (подстрока, case-insensitive) - берётся первое совпадение
//  3. создание нового контрагента
//
// При нескольких совпадениях берётся первый элемент в порядке ответа реестра
// Любая ошибка удалённого вызова прерывает всю последовательность
func (s *PartnerService) FindOrCreate(ctx context.Context, name, email string) (int, error) {
	if email != "" {
		byEmail, err := s.client.SearchByEmail(ctx, email)
		if err != nil {
			return 0, fmt.Errorf("find or create partner: %w", err)
		}
		if len(byEmail) > 0 {
			s.logger.Info("Partner found by email", zap.Int("partner_id", byEmail[0].ID))
			return byEmail[0].ID, nil
		}
	}

	byName, err := s.client.SearchByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("find or create partner: %w", err)
	}
	if len(byName) > 0 {
		s.logger.Info("Partner found by name", zap.Int("partner_id", byName[0].ID))
		return byName[0].ID, nil
	}

	// Совпадений нет - создаём нового контрагента
	// К этому моменту ничего не мутировано, поэтому откат не требуется
	partnerID, err := s.client.Create(ctx, odoo.PartnerInput{Name: name, Email: email})
	if err != nil {
		return 0, fmt.Errorf("find or create partner: %w", err)
	}

	s.logger.Info("Partner created", zap.Int("partner_id", partnerID))
	return partnerID, nil
}

// Search ищет контрагентов по email и/или имени
// Результаты объединяются: сначала совпадения по email, затем по имени,
// дубликаты убираются по ID контрагента (первое вхождение выигрывает)
// Возвращает ErrValidation, если не задан ни один критерий
func (s *PartnerService) Search(ctx context.Context, email, name string) ([]odoo.Partner, error) {
	if email == "" && name == "" {
		return nil, fmt.Errorf("%w: email or name is required", ErrValidation)
	}

	var results []odoo.Partner

	if email != "" {
		byEmail, err := s.client.SearchByEmail(ctx, email)
		if err != nil {
			s.logger.Error("Partner search by email failed", zap.Error(err))
			return nil, fmt.Errorf("search partner: %w", err)
		}
		results = append(results, byEmail...)
	}

	if name != "" {
		byName, err := s.client.SearchByName(ctx, name)
		if err != nil {
			s.logger.Error("Partner search by name failed", zap.Error(err))
			return nil, fmt.Errorf("search partner: %w", err)
		}
		results = append(results, byName...)
	}

	// Дедупликация по ID с сохранением порядка
	seen := make(map[int]bool, len(results))
	unique := make([]odoo.Partner, 0, len(results))
	for _, partner := range results {
		if seen[partner.ID] {
			continue
		}
		seen[partner.ID] = true
		unique = append(unique, partner)
	}

	return unique, nil
}
