package discount

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

const (
	codeLength   = 8
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrCodeNotFound  = errors.New("discount code not found")
	ErrCodeExists    = errors.New("discount code already exists")
	ErrCodeInvalid   = errors.New("discount code is not valid")
	ErrInvalidInput  = errors.New("discount percentage must be between 1 and 100")
	ErrCodeExhausted = repository.ErrCodeExhausted
)

type Service interface {
	Create(ctx context.Context, input domain.CreateDiscountCodeInput, createdBy string) (*domain.DiscountCode, error)
	List(ctx context.Context) ([]domain.DiscountCodeView, error)
	ListActive(ctx context.Context) ([]domain.DiscountCodeView, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateDiscountCodeInput) (*domain.DiscountCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Validate(ctx context.Context, code string) (*domain.DiscountCodeView, error)
	Apply(ctx context.Context, code string) (*domain.DiscountCode, error)
}

type service struct {
	discountRepo repository.DiscountCodeRepository
}

func NewService(discountRepo repository.DiscountCodeRepository) Service {
	return &service{discountRepo: discountRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateDiscountCodeInput, createdBy string) (*domain.DiscountCode, error) {
	if input.DiscountPercentage < 1 || input.DiscountPercentage > 100 {
		return nil, ErrInvalidInput
	}
	if input.UsageLimit != nil && *input.UsageLimit < 1 {
		return nil, ErrInvalidInput
	}

	validDays := input.ValidDays
	if validDays <= 0 {
		validDays = 30
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if input.AutoGenerate || code == "" {
		generated, err := s.generateUniqueCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	} else {
		exists, err := s.discountRepo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCodeExists
		}
	}

	now := time.Now()
	dc := &domain.DiscountCode{
		ID:                 uuid.New(),
		Code:               code,
		DiscountPercentage: input.DiscountPercentage,
		ValidFrom:          now,
		ValidUntil:         now.AddDate(0, 0, validDays),
		IsActive:           true,
		UsageLimit:         input.UsageLimit,
		CreatedBy:          createdBy,
	}

	if err := s.discountRepo.Create(ctx, dc); err != nil {
		return nil, err
	}
	return dc, nil
}

func (s *service) List(ctx context.Context) ([]domain.DiscountCodeView, error) {
	codes, err := s.discountRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return decorate(codes), nil
}

func (s *service) ListActive(ctx context.Context) ([]domain.DiscountCodeView, error) {
	codes, err := s.discountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// The query prunes on window and flag; the usage limit still has to be
	// checked per row.
	now := time.Now()
	views := make([]domain.DiscountCodeView, 0, len(codes))
	for i := range codes {
		if !codes[i].IsValidAt(now) {
			continue
		}
		views = append(views, domain.DiscountCodeView{
			DiscountCode:  codes[i],
			IsValidNow:    true,
			DaysRemaining: codes[i].DaysRemaining(now),
		})
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateDiscountCodeInput) (*domain.DiscountCode, error) {
	dc, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, ErrCodeNotFound
	}

	if input.IsActive != nil {
		dc.IsActive = *input.IsActive
	}
	if input.DiscountPercentage != nil {
		if *input.DiscountPercentage < 1 || *input.DiscountPercentage > 100 {
			return nil, ErrInvalidInput
		}
		dc.DiscountPercentage = *input.DiscountPercentage
	}
	if input.ValidDays != nil {
		if *input.ValidDays <= 0 {
			return nil, ErrInvalidInput
		}
		dc.ValidUntil = time.Now().AddDate(0, 0, *input.ValidDays)
	}

	if err := s.discountRepo.Update(ctx, dc); err != nil {
		return nil, err
	}
	return dc, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.discountRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCodeNotFound
	}
	return nil
}

// Validate is the read-only check the shop frontend calls while the cart is
// open. It never consumes a redemption.
func (s *service) Validate(ctx context.Context, code string) (*domain.DiscountCodeView, error) {
	dc, err := s.discountRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, ErrCodeNotFound
	}

	now := time.Now()
	if !dc.IsValidAt(now) {
		return nil, ErrCodeInvalid
	}

	return &domain.DiscountCodeView{
		DiscountCode:  *dc,
		IsValidNow:    true,
		DaysRemaining: dc.DaysRemaining(now),
	}, nil
}

// Apply consumes one redemption. The repository runs it as a conditional
// increment, so the usage limit holds under concurrent checkouts.
func (s *service) Apply(ctx context.Context, code string) (*domain.DiscountCode, error) {
	return s.discountRepo.Apply(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *service) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := randomCode(codeLength)
		if err != nil {
			return "", err
		}

		exists, err := s.discountRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("failed to generate a unique discount code")
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), nil
}

func decorate(codes []domain.DiscountCode) []domain.DiscountCodeView {
	now := time.Now()
	views := make([]domain.DiscountCodeView, len(codes))
	for i := range codes {
		views[i] = domain.DiscountCodeView{
			DiscountCode:  codes[i],
			IsValidNow:    codes[i].IsValidAt(now),
			DaysRemaining: codes[i].DaysRemaining(now),
		}
	}
	return views
}
