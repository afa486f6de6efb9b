package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"qrattend/internal/domain/entities"
)

const (
	embedColor     = 0x5865F2
	syncEmbedColor = 0x57F287
	markEmbedTitle = "✅ Présence enregistrée"
	syncEmbedTitle = "🔄 Feuille synchronisée"
)

// BuildMarkEmbed builds the webhook embed announcing one attendee.
func BuildMarkEmbed(rec entities.Record, sheetName string) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s** (%s)\n", rec.Name, rec.RegistrationID))
	b.WriteString(fmt.Sprintf("**Heure :** %s", rec.TimeStamp))
	return &discordgo.MessageEmbed{
		Title:       markEmbedTitle,
		Description: b.String(),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: sheetName},
	}
}

// BuildSyncEmbed builds the webhook embed for a push that updated cells.
// Phone numbers are never posted.
func BuildSyncEmbed(res entities.SyncResult, summary entities.Summary, sheetName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: syncEmbedTitle,
		Description: fmt.Sprintf("**Cellules mises à jour :** %d\n**Présents :** %s",
			res.UpdatedCells, formatPresence(summary)),
		Color:     syncEmbedColor,
		Timestamp: res.At.Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: sheetName},
	}
}

func formatPresence(s entities.Summary) string {
	if s.Total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d/%d", s.Present, s.Total)
}
