package rules

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

const (
	pageCacheKey = "rules:active"
	pageCacheTTL = 5 * time.Minute
)

var (
	ErrSectionNotFound = errors.New("rule section not found")
	ErrRuleNotFound    = errors.New("rule not found in section")
	ErrInvalidInput    = errors.New("section title is required")
	ErrInvalidOrder    = errors.New("new_order must be between 0 and the number of sections minus one")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateRuleSectionInput) (*domain.RuleSection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RuleSection, error)
	ListActive(ctx context.Context) ([]domain.RuleSection, error)
	ListAll(ctx context.Context) ([]domain.RuleSection, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateRuleSectionInput) (*domain.RuleSection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, id uuid.UUID, newOrder int) (*domain.RuleSection, error)
	AddRule(ctx context.Context, sectionID uuid.UUID, text string) (*domain.RuleSection, error)
	UpdateRule(ctx context.Context, sectionID, ruleID uuid.UUID, text string) (*domain.RuleSection, error)
	RemoveRule(ctx context.Context, sectionID, ruleID uuid.UUID) (*domain.RuleSection, error)
}

type service struct {
	sectionRepo repository.RuleSectionRepository
	redis       *redis.Client
}

func NewService(sectionRepo repository.RuleSectionRepository, redisClient *redis.Client) Service {
	return &service{sectionRepo: sectionRepo, redis: redisClient}
}

func (s *service) Create(ctx context.Context, input domain.CreateRuleSectionInput) (*domain.RuleSection, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrInvalidInput
	}

	section := &domain.RuleSection{
		ID:        uuid.New(),
		Title:     input.Title,
		Icon:      "📋",
		Type:      domain.SectionList,
		Active:    true,
		Content:   input.Content,
		CardStyle: domain.CardNormal,
		Rules:     domain.RuleList{},
	}
	if input.Icon != nil {
		section.Icon = *input.Icon
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, ErrInvalidInput
		}
		section.Type = *input.Type
	}
	if input.CardStyle != nil {
		if !input.CardStyle.IsValid() {
			return nil, ErrInvalidInput
		}
		section.CardStyle = *input.CardStyle
	}
	section.TableHeaders = domain.StringList(input.TableHeaders)
	section.TableRows = domain.TableRowList(input.TableRows)
	section.Notes = domain.StringList(input.Notes)
	for _, text := range input.Rules {
		section.AddRule(text)
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return section, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.RuleSection, error) {
	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}
	return section, nil
}

// ListActive serves the public rules page, cached in Redis for a few minutes
// and invalidated on every mutation.
func (s *service) ListActive(ctx context.Context) ([]domain.RuleSection, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, pageCacheKey).Result(); err == nil {
			var sections []domain.RuleSection
			if err := json.Unmarshal([]byte(cached), &sections); err == nil {
				return sections, nil
			}
		}
	}

	sections, err := s.sectionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(sections); err == nil {
			s.redis.Set(ctx, pageCacheKey, data, pageCacheTTL)
		}
	}

	return sections, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.RuleSection, error) {
	return s.sectionRepo.ListAll(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateRuleSectionInput) (*domain.RuleSection, error) {
	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrInvalidInput
		}
		section.Title = title
	}
	if input.Icon != nil {
		section.Icon = *input.Icon
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, ErrInvalidInput
		}
		section.Type = *input.Type
	}
	if input.Content != nil {
		section.Content = *input.Content
	}
	if input.TableHeaders != nil {
		section.TableHeaders = domain.StringList(*input.TableHeaders)
	}
	if input.TableRows != nil {
		section.TableRows = domain.TableRowList(*input.TableRows)
	}
	if input.Notes != nil {
		section.Notes = domain.StringList(*input.Notes)
	}
	if input.CardStyle != nil {
		if !input.CardStyle.IsValid() {
			return nil, ErrInvalidInput
		}
		section.CardStyle = *input.CardStyle
	}
	if input.Active != nil {
		section.Active = *input.Active
	}

	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return section, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.sectionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSectionNotFound
	}

	s.invalidateCache(ctx)
	return nil
}

// Reorder moves a section to a new rank. The target has to land inside the
// current 0..N-1 range, the repository then shifts everything in between.
func (s *service) Reorder(ctx context.Context, id uuid.UUID, newOrder int) (*domain.RuleSection, error) {
	sections, err := s.sectionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if newOrder < 0 || newOrder >= len(sections) {
		return nil, ErrInvalidOrder
	}

	section, err := s.sectionRepo.Reorder(ctx, id, newOrder)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	s.invalidateCache(ctx)
	return section, nil
}

func (s *service) AddRule(ctx context.Context, sectionID uuid.UUID, text string) (*domain.RuleSection, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	section.AddRule(text)
	if err := s.sectionRepo.UpdateRules(ctx, sectionID, section.Rules); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return section, nil
}

func (s *service) UpdateRule(ctx context.Context, sectionID, ruleID uuid.UUID, text string) (*domain.RuleSection, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	if !section.UpdateRule(ruleID, text) {
		return nil, ErrRuleNotFound
	}
	if err := s.sectionRepo.UpdateRules(ctx, sectionID, section.Rules); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return section, nil
}

func (s *service) RemoveRule(ctx context.Context, sectionID, ruleID uuid.UUID) (*domain.RuleSection, error) {
	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}

	if !section.RemoveRule(ruleID) {
		return nil, ErrRuleNotFound
	}
	if err := s.sectionRepo.UpdateRules(ctx, sectionID, section.Rules); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return section, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.redis != nil {
		s.redis.Del(ctx, pageCacheKey)
	}
}
