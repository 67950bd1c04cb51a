package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/repository"
	"perfect-cfw/internal/service/activity"
	"perfect-cfw/internal/service/admin"
	"perfect-cfw/internal/service/application"
	"perfect-cfw/internal/service/auth"
	"perfect-cfw/internal/service/discord"
	"perfect-cfw/internal/service/discount"
	"perfect-cfw/internal/service/email"
	"perfect-cfw/internal/service/notification"
	"perfect-cfw/internal/service/product"
	"perfect-cfw/internal/service/question"
	"perfect-cfw/internal/service/rules"
	"perfect-cfw/internal/service/settings"
)

type Services struct {
	Auth         auth.Service
	Admin        admin.Service
	Discord      discord.Service
	Application  application.Service
	Question     question.Service
	Product      product.Service
	Discount     discount.Service
	Rules        rules.Service
	Notification notification.Service
	Activity     activity.Service
	Settings     settings.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	settingsService := settings.NewService(repos.Setting)
	notificationService := notification.NewService(repos.Notification, discord.NewNotifier(cfg))

	return &Services{
		Auth:         auth.NewService(repos.Admin, cfg),
		Admin:        admin.NewService(repos.Admin),
		Discord:      discord.NewService(repos.User, cfg),
		Application:  application.NewService(repos.Application, repos.User, repos.Admin, settingsService, notificationService, emailService),
		Question:     question.NewService(repos.Question),
		Product:      product.NewService(repos.Product, minioClient, redisClient, cfg),
		Discount:     discount.NewService(repos.DiscountCode),
		Rules:        rules.NewService(repos.RuleSection, redisClient),
		Notification: notificationService,
		Activity:     activity.NewService(repos.ActivityLog),
		Settings:     settingsService,
		Email:        emailService,
	}
}
