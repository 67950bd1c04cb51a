package handler

import (
	"perfect-cfw/internal/config"
	"perfect-cfw/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Admin        *AdminHandler
	Discord      *DiscordHandler
	Application  *ApplicationHandler
	Question     *QuestionHandler
	Product      *ProductHandler
	Discount     *DiscountHandler
	Rules        *RulesHandler
	Notification *NotificationHandler
	Activity     *ActivityHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Admin:        NewAdminHandler(services.Admin, services.Activity),
		Discord:      NewDiscordHandler(services.Discord, cfg),
		Application:  NewApplicationHandler(services.Application, services.Activity),
		Question:     NewQuestionHandler(services.Question),
		Product:      NewProductHandler(services.Product, services.Activity),
		Discount:     NewDiscountHandler(services.Discount, services.Activity),
		Rules:        NewRulesHandler(services.Rules, services.Activity),
		Notification: NewNotificationHandler(services.Notification),
		Activity:     NewActivityHandler(services.Activity),
	}
}
