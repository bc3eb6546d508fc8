package broadcast

import "context"

type Sender interface {
	SendContent(ctx context.Context, chatID int64, content Content) error
}
