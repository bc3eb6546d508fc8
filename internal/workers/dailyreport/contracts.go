package dailyreport

import "context"

type Reporter interface {
	Execute(ctx context.Context, chatID int64) error
}
