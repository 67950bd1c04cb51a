package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"perfect-cfw/internal/config"
)

// DM is a direct message rendered as a single embed.
type DM struct {
	Content     string `json:"content,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

// Notifier delivers direct messages to members through the bot API.
type Notifier interface {
	SendDM(ctx context.Context, discordID string, dm DM) error
}

type botNotifier struct {
	token  string
	client *http.Client
}

func NewNotifier(cfg *config.Config) Notifier {
	return &botNotifier{
		token:  cfg.DiscordBotToken,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendDM opens (or reuses) the DM channel with the member and posts one
// embed message into it. Two REST calls, both authenticated as the bot.
func (n *botNotifier) SendDM(ctx context.Context, discordID string, dm DM) error {
	if n.token == "" {
		return fmt.Errorf("discord bot token is not configured")
	}

	channelID, err := n.openDMChannel(ctx, discordID)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"embeds": []map[string]interface{}{
			{
				"title":       dm.Title,
				"description": dm.Description,
				"color":       dm.Color,
			},
		},
	}
	if dm.Content != "" {
		payload["content"] = dm.Content
	}

	return n.post(ctx, fmt.Sprintf("%s/channels/%s/messages", apiBase, channelID), payload, nil)
}

func (n *botNotifier) openDMChannel(ctx context.Context, discordID string) (string, error) {
	var channel struct {
		ID string `json:"id"`
	}
	payload := map[string]string{"recipient_id": discordID}

	if err := n.post(ctx, apiBase+"/users/@me/channels", payload, &channel); err != nil {
		return "", fmt.Errorf("failed to open DM channel: %w", err)
	}
	return channel.ID, nil
}

func (n *botNotifier) post(ctx context.Context, url string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord API returned status %d: %s", resp.StatusCode, snippet)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
