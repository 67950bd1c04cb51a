package question

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

// randomQuestionCount is how many pool questions each application form draws.
const randomQuestionCount = 5

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidInput     = errors.New("question text and a valid type are required")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateQuestionInput) (*domain.Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateQuestionInput) (*domain.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ForApplication(ctx context.Context) (*domain.ApplicationQuestions, error)
}

type service struct {
	questionRepo repository.QuestionRepository
}

func NewService(questionRepo repository.QuestionRepository) Service {
	return &service{questionRepo: questionRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateQuestionInput) (*domain.Question, error) {
	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" || !input.Type.IsValid() {
		return nil, ErrInvalidInput
	}

	required := true
	if input.IsRequired != nil {
		required = *input.IsRequired
	}

	q := &domain.Question{
		ID:          uuid.New(),
		Text:        input.Text,
		Type:        input.Type,
		IsRequired:  required,
		IsBasic:     input.IsBasic,
		SortOrder:   input.SortOrder,
		Active:      true,
		Placeholder: input.Placeholder,
	}
	if input.Validation != nil {
		q.Validation = *input.Validation
	}

	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

func (s *service) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	return s.questionRepo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateQuestionInput) (*domain.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}

	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return nil, ErrInvalidInput
		}
		q.Text = text
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, ErrInvalidInput
		}
		q.Type = *input.Type
	}
	if input.IsRequired != nil {
		q.IsRequired = *input.IsRequired
	}
	if input.IsBasic != nil {
		q.IsBasic = *input.IsBasic
	}
	if input.SortOrder != nil {
		q.SortOrder = *input.SortOrder
	}
	if input.Placeholder != nil {
		q.Placeholder = *input.Placeholder
	}
	if input.Validation != nil {
		q.Validation = *input.Validation
	}
	if input.Active != nil {
		q.Active = *input.Active
	}

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.questionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *service) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}

	q.Active = !q.Active
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ForApplication assembles the public activation form: every basic question
// in its fixed order plus a fresh random draw from the pool.
func (s *service) ForApplication(ctx context.Context) (*domain.ApplicationQuestions, error) {
	basic, err := s.questionRepo.GetBasic(ctx)
	if err != nil {
		return nil, err
	}

	random, err := s.questionRepo.GetRandom(ctx, randomQuestionCount)
	if err != nil {
		return nil, err
	}

	return &domain.ApplicationQuestions{Basic: basic, Random: random}, nil
}
