package push

import (
	"context"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

//go:generate mockgen -source=dispatcher.go -destination=dispatcher_mock.go -package=push

type Dispatcher interface {
	// Dispatch sends n to every token in one logical call. An error means the
	// transport itself failed; per-token failures are reported in the result.
	Dispatch(ctx context.Context, tokens []string, n domain.Notification) (DispatchResult, error)
}

type TokenResult struct {
	Token        string
	Success      bool
	Unregistered bool
	Err          error
}

type DispatchResult struct {
	SuccessCount int
	FailureCount int
	Responses    []TokenResult
}

// UnregisteredTokens lists tokens the transport reported as no longer valid.
func (r DispatchResult) UnregisteredTokens() []string {
	var tokens []string

	for _, resp := range r.Responses {
		if resp.Unregistered {
			tokens = append(tokens, resp.Token)
		}
	}

	return tokens
}

func (r *DispatchResult) merge(other DispatchResult) {
	r.SuccessCount += other.SuccessCount
	r.FailureCount += other.FailureCount
	r.Responses = append(r.Responses, other.Responses...)
}
