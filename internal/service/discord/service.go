package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

const apiBase = "https://discord.com/api/v10"

var ErrUserNotFound = errors.New("user not found")

type Service interface {
	AuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (*domain.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
}

type service struct {
	userRepo repository.UserRepository
	oauth    *oauth2.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Service {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		RedirectURL:  cfg.DiscordRedirectURI,
		Scopes:       []string{"identify", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://discord.com/api/oauth2/authorize",
			TokenURL: "https://discord.com/api/oauth2/token",
		},
	}
	return &service{userRepo: userRepo, oauth: oauthCfg}
}

func (s *service) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type discordUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	Email         *string `json:"email"`
	Avatar        *string `json:"avatar"`
}

// HandleCallback finishes the OAuth dance: exchanges the authorization code,
// fetches the Discord profile and upserts the user by discord_id. A returning
// user gets their cached profile fields refreshed, never their activation state.
func (s *service) HandleCallback(ctx context.Context, code string) (*domain.User, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:            uuid.New(),
		DiscordID:     profile.ID,
		Username:      profile.Username,
		Discriminator: profile.Discriminator,
		Nickname:      profile.GlobalName,
		Email:         profile.Email,
		Avatar:        profile.Avatar,
		AccessToken:   &token.AccessToken,
	}
	if token.RefreshToken != "" {
		user.RefreshToken = &token.RefreshToken
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := user.Profile()
	return &profile, nil
}

func (s *service) fetchProfile(ctx context.Context, token *oauth2.Token) (*discordUser, error) {
	client := s.oauth.Client(ctx, token)
	client.Timeout = 10 * time.Second

	resp, err := client.Get(apiBase + "/users/@me")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Discord profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord API returned status %d", resp.StatusCode)
	}

	var profile discordUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode Discord profile: %w", err)
	}
	return &profile, nil
}
