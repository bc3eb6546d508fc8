package dispatch

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback - нажатие inline-кнопки
type Callback struct {
	ID        string
	Data      string
	MessageID int
	// Caption - подпись сообщения с кнопкой, к ней дописывается отметка решения
	Caption string
}

// Input - всё, что нужно для выбора маршрута, без ссылок на транспорт
type Input struct {
	UpdateID   int
	ChatID     int64
	SenderID   int64
	IsOperator bool

	MessageID        int
	ReplyToMessageID int
	Text             string
	Caption          string
	PhotoFileID      string
	VideoFileID      string

	FirstName    string
	Username     string
	LanguageCode string

	Callback   *Callback
	ReceivedAt time.Time
}

func (in Input) IsMessage() bool {
	return in.Callback == nil
}

// FromUpdate разбирает update. ok=false для неподдерживаемых типов обновлений.
func FromUpdate(update tgbotapi.Update, operatorID int64) (Input, bool) {
	in := Input{UpdateID: update.UpdateID}

	switch {
	case update.Message != nil:
		msg := update.Message
		if msg.From == nil || msg.Chat == nil {
			return Input{}, false
		}
		in.ChatID = msg.Chat.ID
		in.SenderID = msg.From.ID
		in.MessageID = msg.MessageID
		in.Text = msg.Text
		in.Caption = msg.Caption
		in.FirstName = msg.From.FirstName
		in.Username = msg.From.UserName
		in.LanguageCode = msg.From.LanguageCode
		in.ReceivedAt = time.Unix(int64(msg.Date), 0).UTC()
		if len(msg.Photo) > 0 {
			// последний размер - самый большой
			in.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
		}
		if msg.Video != nil {
			in.VideoFileID = msg.Video.FileID
		}
		if msg.ReplyToMessage != nil {
			in.ReplyToMessageID = msg.ReplyToMessage.MessageID
		}

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.From == nil {
			return Input{}, false
		}
		in.SenderID = cq.From.ID
		in.ChatID = cq.From.ID
		in.FirstName = cq.From.FirstName
		in.Username = cq.From.UserName
		in.LanguageCode = cq.From.LanguageCode
		in.ReceivedAt = time.Now().UTC()
		in.Callback = &Callback{ID: cq.ID, Data: cq.Data}
		if cq.Message != nil {
			if cq.Message.Chat != nil {
				in.ChatID = cq.Message.Chat.ID
			}
			in.Callback.MessageID = cq.Message.MessageID
			in.Callback.Caption = cq.Message.Caption
		}

	default:
		return Input{}, false
	}

	in.IsOperator = operatorID != 0 && in.SenderID == operatorID
	return in, true
}
