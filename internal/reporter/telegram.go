// Optional Telegram notification with the run's change summary. Reporting
// failures are logged by the caller and never fail the run.

package reporter

import (
	"fmt"
	"strings"

	"careerwatch/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxListedPostings = 5

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) SendChanges(cs *model.ChangeSet) error {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Job feed update</b>\n")
	fmt.Fprintf(&b, "🆕 %d new · ✏️ %d updated · 🗑 %d removed\n",
		cs.Counts.New, cs.Counts.Updated, cs.Counts.Removed)

	for i, job := range cs.New {
		if i >= maxListedPostings {
			fmt.Fprintf(&b, "… and %d more\n", len(cs.New)-maxListedPostings)
			break
		}
		loc := job.Location
		if loc == "" {
			loc = "n/a"
		}
		fmt.Fprintf(&b, "\n🔥 <b>%s</b>\n🏢 %s\n📍 %s\n🔗 <a href=\"%s\">View posting</a>\n",
			escapeHTML(job.Title), escapeHTML(job.Company.Name), escapeHTML(loc), job.URL)
	}

	msg := tgbotapi.NewMessage(t.chatID, b.String())
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendError(runErr error) error {
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("⚠️ Scrape run error:\n%v", runErr))
	_, err := t.bot.Send(msg)
	return err
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
