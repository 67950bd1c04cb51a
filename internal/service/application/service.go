package application

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
	"perfect-cfw/internal/service/email"
	"perfect-cfw/internal/service/notification"
	"perfect-cfw/internal/service/settings"
)

var (
	ErrApplicationsClosed  = errors.New("applications are currently closed")
	ErrUserNotFound        = errors.New("user not found")
	ErrAlreadyApplied      = repository.ErrAlreadyApplied
	ErrIncompleteAnswers   = errors.New("real name, age and country are required")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyReviewed     = repository.ErrNotPending
	ErrReasonRequired      = errors.New("a rejection reason is required")
)

type Service interface {
	IsOpen(ctx context.Context) (bool, error)
	SetOpen(ctx context.Context, open bool) error
	Submit(ctx context.Context, input domain.SubmitApplicationInput) (*domain.Application, error)
	MyApplication(ctx context.Context, userID uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	Accept(ctx context.Context, id, reviewerID uuid.UUID) (*domain.Application, error)
	Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) (*domain.Application, error)
	Stats(ctx context.Context) (*domain.ApplicationStats, error)
}

type service struct {
	applicationRepo repository.ApplicationRepository
	userRepo        repository.UserRepository
	adminRepo       repository.AdminRepository
	settings        settings.Service
	notifications   notification.Service
	emails          email.Service
}

func NewService(
	applicationRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	settingsService settings.Service,
	notificationService notification.Service,
	emailService email.Service,
) Service {
	return &service{
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		adminRepo:       adminRepo,
		settings:        settingsService,
		notifications:   notificationService,
		emails:          emailService,
	}
}

func (s *service) IsOpen(ctx context.Context) (bool, error) {
	return s.settings.GetBool(ctx, domain.SettingApplicationsOpen, false)
}

func (s *service) SetOpen(ctx context.Context, open bool) error {
	return s.settings.SetBool(ctx, domain.SettingApplicationsOpen, open, "Whether the member application form accepts submissions")
}

// Submit files a new member application. The insert and the user's
// has_applied flip happen in one repository transaction, so a double-click
// cannot produce two applications. Admin email alerts are best-effort.
func (s *service) Submit(ctx context.Context, input domain.SubmitApplicationInput) (*domain.Application, error) {
	open, err := s.IsOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrApplicationsClosed
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.HasApplied {
		return nil, ErrAlreadyApplied
	}

	if !input.BasicAnswers.Complete() {
		return nil, ErrIncompleteAnswers
	}

	app := &domain.Application{
		ID:        uuid.New(),
		UserID:    user.ID,
		DiscordID: user.DiscordID,
		RealName:  strings.TrimSpace(input.BasicAnswers.RealName),
		RealAge:   input.BasicAnswers.RealAge,
		Country:   strings.TrimSpace(input.BasicAnswers.Country),
		Answers:   domain.AnswerList(input.Answers),
		Status:    domain.AppStatusPending,
	}

	if err := s.applicationRepo.Submit(ctx, app); err != nil {
		return nil, err
	}

	go s.alertAdmins(app.RealName, user.FullUsername())

	return app, nil
}

func (s *service) MyApplication(ctx context.Context, userID uuid.UUID) (*domain.Application, error) {
	app, err := s.applicationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

func (s *service) List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.Application, error) {
	apps, err := s.applicationRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	for i := range apps {
		s.enrich(ctx, &apps[i])
	}
	return apps, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	s.enrich(ctx, app)
	return app, nil
}

func (s *service) Accept(ctx context.Context, id, reviewerID uuid.UUID) (*domain.Application, error) {
	return s.decide(ctx, id, domain.AppStatusAccepted, reviewerID, nil)
}

func (s *service) Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string) (*domain.Application, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.decide(ctx, id, domain.AppStatusRejected, reviewerID, &reason)
}

// decide runs the review: the application's terminal transition and the user
// status mirror commit together in the repository, then the member is
// notified. A lost race against another reviewer surfaces as ErrAlreadyReviewed
// and mutates nothing.
func (s *service) decide(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, reviewerID uuid.UUID, reason *string) (*domain.Application, error) {
	existing, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrApplicationNotFound
	}
	if existing.Status != domain.AppStatusPending {
		return nil, ErrAlreadyReviewed
	}

	app, err := s.applicationRepo.Decide(ctx, id, status, reviewerID, reason)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, app.UserID)
	if err != nil || user == nil {
		log.Printf("Could not load user %s for decision notification: %v", app.UserID, err)
		return app, nil
	}

	if err := s.notifications.NotifyApplicationDecision(ctx, user, app); err != nil {
		log.Printf("Failed to record decision notification for application %s: %v", app.ID, err)
	}

	return app, nil
}

func (s *service) Stats(ctx context.Context) (*domain.ApplicationStats, error) {
	return s.applicationRepo.Stats(ctx)
}

// enrich attaches the applicant profile and the reviewer's username for the
// admin panel. Lookup failures leave the fields empty, the application row
// itself is already complete.
func (s *service) enrich(ctx context.Context, app *domain.Application) {
	if user, err := s.userRepo.GetByID(ctx, app.UserID); err == nil && user != nil {
		profile := user.Profile()
		app.Applicant = &profile
	}
	if app.ReviewedBy != nil {
		if admin, err := s.adminRepo.GetByID(ctx, *app.ReviewedBy); err == nil && admin != nil {
			app.Reviewer = &admin.Username
		}
	}
}

func (s *service) alertAdmins(applicantName, discordTag string) {
	ctx := context.Background()

	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		log.Printf("Failed to list admins for application alert: %v", err)
		return
	}

	for _, admin := range admins {
		if !admin.Active || admin.Email == nil || *admin.Email == "" {
			continue
		}
		if err := s.emails.SendNewApplicationAlert(ctx, *admin.Email, admin.Username, applicantName, discordTag); err != nil {
			log.Printf("Failed to email %s about new application: %v", admin.Username, err)
		}
	}
}
