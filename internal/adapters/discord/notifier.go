package discord

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"qrattend/internal/domain/entities"
	"qrattend/internal/ports/output"
	pkgdiscord "qrattend/pkg/discord"
)

var _ output.Notifier = (*Notifier)(nil)

// Notifier posts attendance activity to a Discord channel webhook.
type Notifier struct {
	session   *discordgo.Session
	webhookID string
	token     string
	sheetName string
}

// NewNotifier parses a webhook URL of the form
// https://discord.com/api/webhooks/<id>/<token>.
func NewNotifier(webhookURL, sheetName string) (*Notifier, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// Webhooks carry their own token; the session needs no bot token.
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Notifier{session: s, webhookID: id, token: token, sheetName: sheetName}, nil
}

func (n *Notifier) NotifyMark(ctx context.Context, rec entities.Record) error {
	return n.execute(ctx, pkgdiscord.BuildMarkEmbed(rec, n.sheetName))
}

func (n *Notifier) NotifySync(ctx context.Context, res entities.SyncResult, summary entities.Summary) error {
	return n.execute(ctx, pkgdiscord.BuildSyncEmbed(res, summary, n.sheetName))
}

func (n *Notifier) execute(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := n.session.WebhookExecute(n.webhookID, n.token, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("execute webhook: %w", err)
	}
	return nil
}

// ParseWebhookURL extracts the webhook id and token.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("webhook url invalide: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("webhook url invalide (%q): attendu .../webhooks/<id>/<token>", raw)
}
