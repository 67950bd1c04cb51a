package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Admin        AdminRepository
	User         UserRepository
	Application  ApplicationRepository
	Question     QuestionRepository
	Product      ProductRepository
	DiscountCode DiscountCodeRepository
	RuleSection  RuleSectionRepository
	Notification NotificationRepository
	ActivityLog  ActivityLogRepository
	Setting      SettingRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Admin:        NewAdminRepository(db),
		User:         NewUserRepository(db),
		Application:  NewApplicationRepository(db),
		Question:     NewQuestionRepository(db),
		Product:      NewProductRepository(db),
		DiscountCode: NewDiscountCodeRepository(db),
		RuleSection:  NewRuleSectionRepository(db),
		Notification: NewNotificationRepository(db),
		ActivityLog:  NewActivityLogRepository(db),
		Setting:      NewSettingRepository(db),
	}
}
