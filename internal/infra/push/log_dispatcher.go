package push

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

// LogDispatcher reports every token as delivered and only writes a log line.
// It stands in for FCM in local runs without credentials.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, tokens []string, n domain.Notification) (DispatchResult, error) {
	slog.InfoContext(ctx, "push notification (log only)",
		slog.String("title", n.Title),
		slog.String("body", n.Body),
		slog.String("link", n.Link),
		slog.Int("token_count", len(tokens)),
	)

	result := DispatchResult{
		SuccessCount: len(tokens),
		Responses:    make([]TokenResult, 0, len(tokens)),
	}

	for _, token := range tokens {
		result.Responses = append(result.Responses, TokenResult{Token: token, Success: true})
	}

	return result, nil
}
