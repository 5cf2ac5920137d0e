package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/yuin/goldmark"

	"lideranca/internal/adapters/email"
	"lideranca/internal/application/projections"
	"lideranca/internal/domain/announcement"
	"lideranca/internal/domain/pastorword"
)

// BulletinSubject is the subject line of the weekly bulletin.
const BulletinSubject = "Boletim da Liderança"

// BulletinInput carries the recipient list and the current snapshots.
type BulletinInput struct {
	To            []string
	Words         []pastorword.Word
	Announcements []announcement.Announcement
}

// BulletinDeps holds the dependencies for bulletin delivery.
type BulletinDeps struct {
	Sender email.Sender
}

// ExecuteSendBulletin emails the latest pastoral word and the current
// announcement board to the leadership list.
// PRE: input.To is non-empty
// POST: One email is queued with the rendered bulletin
func ExecuteSendBulletin(ctx context.Context, deps BulletinDeps, input BulletinInput) error {
	if len(input.To) == 0 {
		return fmt.Errorf("send bulletin: no recipients")
	}

	body, err := renderBulletin(input)
	if err != nil {
		return fmt.Errorf("send bulletin: %w", err)
	}

	result, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      input.To,
		Subject: BulletinSubject,
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("send bulletin: %w", err)
	}

	slog.Info("bulletin_event", "event", "bulletin_sent", "message_id", result.MessageID, "recipients", len(input.To))
	return nil
}

// renderBulletin builds the HTML body. The pastoral word is authored
// as markdown and rendered; announcements are plain text.
func renderBulletin(input BulletinInput) (string, error) {
	var b bytes.Buffer
	b.WriteString("<h1>" + BulletinSubject + "</h1>")

	if word, ok := projections.LatestWord(input.Words); ok {
		b.WriteString("<h2>" + html.EscapeString(word.Theme) + "</h2>")
		if err := goldmark.Convert([]byte(word.Content), &b); err != nil {
			return "", fmt.Errorf("render word: %w", err)
		}
	}

	if len(input.Announcements) > 0 {
		b.WriteString("<h2>Avisos</h2><ul>")
		for _, a := range input.Announcements {
			b.WriteString("<li><strong>" + html.EscapeString(a.Title) + "</strong>")
			if a.Date != "" {
				b.WriteString(" (" + html.EscapeString(a.Date) + ")")
			}
			b.WriteString(" - " + html.EscapeString(a.Content) + "</li>")
		}
		b.WriteString("</ul>")
	}

	return b.String(), nil
}
