package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	DiscordID         string            `json:"discord_id" db:"discord_id"`
	Username          string            `json:"username" db:"username"`
	Discriminator     string            `json:"discriminator" db:"discriminator"`
	Nickname          *string           `json:"nickname,omitempty" db:"nickname"`
	Email             *string           `json:"email,omitempty" db:"email"`
	Avatar            *string           `json:"avatar,omitempty" db:"avatar"`
	AccessToken       *string           `json:"-" db:"access_token"`
	RefreshToken      *string           `json:"-" db:"refresh_token"`
	HasApplied        bool              `json:"has_applied" db:"has_applied"`
	ApplicationStatus ApplicationStatus `json:"application_status" db:"application_status"`
	LastLogin         time.Time         `json:"last_login" db:"last_login"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// AvatarURL builds the Discord CDN avatar address, falling back to one of
// the five embed defaults when the user never set an avatar.
func (u *User) AvatarURL() string {
	if u.Avatar == nil || *u.Avatar == "" {
		n, _ := strconv.Atoi(u.Discriminator)
		return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", n%5)
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.DiscordID, *u.Avatar)
}

func (u *User) FullUsername() string {
	if u.Discriminator != "" && u.Discriminator != "0" {
		return u.Username + "#" + u.Discriminator
	}
	return "@" + u.Username
}

// UserProfile is the public projection returned to the activation frontend.
type UserProfile struct {
	ID                uuid.UUID         `json:"id"`
	DiscordID         string            `json:"discord_id"`
	Username          string            `json:"username"`
	Discriminator     string            `json:"discriminator"`
	FullUsername      string            `json:"full_username"`
	Email             *string           `json:"email,omitempty"`
	Avatar            string            `json:"avatar"`
	Nickname          string            `json:"nickname"`
	HasApplied        bool              `json:"has_applied"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
}

func (u *User) Profile() UserProfile {
	nickname := u.Username
	if u.Nickname != nil && *u.Nickname != "" {
		nickname = *u.Nickname
	}
	return UserProfile{
		ID:                u.ID,
		DiscordID:         u.DiscordID,
		Username:          u.Username,
		Discriminator:     u.Discriminator,
		FullUsername:      u.FullUsername(),
		Email:             u.Email,
		Avatar:            u.AvatarURL(),
		Nickname:          nickname,
		HasApplied:        u.HasApplied,
		ApplicationStatus: u.ApplicationStatus,
	}
}
