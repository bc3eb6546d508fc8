package broadcast

import (
	"strings"

	"github.com/google/uuid"

	"flowershop-bot/internal/localization"
)

// Separator - строка, разделяющая русский и казахский варианты рассылки
const Separator = "---"

// Content - одно сообщение рассылки: текст, фото или видео с подписью
type Content struct {
	Text        string
	PhotoFileID string
	VideoFileID string
	Caption     string
}

func (c Content) Empty() bool {
	return strings.TrimSpace(c.Text) == "" && c.PhotoFileID == "" && c.VideoFileID == ""
}

type Variants struct {
	Ru Content
	Kk Content
}

// Same - одинаковое содержимое для всех языков
func Same(c Content) Variants {
	return Variants{Ru: c, Kk: c}
}

// TextVariants собирает варианты из явных текстов, пустой казахский берётся из русского
func TextVariants(ru, kk string) Variants {
	ru = strings.TrimSpace(ru)
	kk = strings.TrimSpace(kk)
	if kk == "" {
		kk = ru
	}
	if ru == "" {
		ru = kk
	}
	return Variants{Ru: Content{Text: ru}, Kk: Content{Text: kk}}
}

// SplitVariants делит сообщение по строке "---": сверху русский текст, снизу казахский
func SplitVariants(message string) Variants {
	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == Separator {
			return TextVariants(strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n"))
		}
	}
	return TextVariants(message, "")
}

func (v Variants) For(languageCode string) Content {
	if localization.Normalize(languageCode) == localization.LangKazakh {
		return v.Kk
	}
	return v.Ru
}

type Recipient struct {
	// ChatID == 0 означает, что у клиента нет чата с ботом
	ChatID       int64
	LanguageCode string
}

type Result struct {
	RunID   uuid.UUID `json:"runId"`
	Total   int       `json:"total"`
	Sent    int       `json:"sent"`
	Errors  int       `json:"errors"`
	Skipped int       `json:"skipped"`
}

const (
	OutcomeSent    = "sent"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)
