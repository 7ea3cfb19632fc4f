package push

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-task-reminder/internal/domain"
)

// fcmMulticastLimit is the maximum number of tokens FCM accepts per multicast.
const fcmMulticastLimit = 500

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type FCMDispatcher struct {
	client         multicastSender
	isUnregistered func(error) bool
}

type FCMConfig struct {
	ProjectID       string
	CredentialsFile string
}

// NewFCMDispatcher builds a dispatcher backed by Firebase Cloud Messaging.
// Without a credentials file the SDK falls back to application default
// credentials.
func NewFCMDispatcher(ctx context.Context, cfg FCMConfig) (*FCMDispatcher, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	fbApp, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := fbApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return newFCMDispatcher(client), nil
}

func newFCMDispatcher(client multicastSender) *FCMDispatcher {
	return &FCMDispatcher{
		client:         client,
		isUnregistered: messaging.IsUnregistered,
	}
}

func (d *FCMDispatcher) Dispatch(ctx context.Context, tokens []string, n domain.Notification) (DispatchResult, error) {
	var result DispatchResult

	for start := 0; start < len(tokens); start += fcmMulticastLimit {
		end := min(start+fcmMulticastLimit, len(tokens))
		chunk := tokens[start:end]

		resp, err := d.client.SendEachForMulticast(ctx, buildMulticastMessage(chunk, n))
		if err != nil {
			if result.SuccessCount > 0 {
				slog.WarnContext(ctx, "multicast chunk failed after partial delivery",
					slog.Int("chunk_start", start),
					slog.Int("chunk_size", len(chunk)),
					slog.String("error", err.Error()),
				)

				result.merge(failedChunk(chunk, err))

				continue
			}

			return result, fmt.Errorf("failed to send multicast: %w", err)
		}

		result.merge(d.toDispatchResult(chunk, resp))
	}

	return result, nil
}

func buildMulticastMessage(tokens []string, n domain.Notification) *messaging.MulticastMessage {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
		},
	}

	// FCM rejects the whole message when the web push link is not HTTPS.
	// The link still travels in the data payload.
	if isHTTPSLink(n.Link) {
		msg.Webpush = &messaging.WebpushConfig{
			FCMOptions: &messaging.WebpushFCMOptions{
				Link: n.Link,
			},
		}
	}

	return msg
}

func isHTTPSLink(link string) bool {
	u, err := url.Parse(link)

	return err == nil && u.Scheme == "https" && u.Host != ""
}

// toDispatchResult pairs responses with tokens; FCM keeps them in request order.
func (d *FCMDispatcher) toDispatchResult(tokens []string, resp *messaging.BatchResponse) DispatchResult {
	result := DispatchResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Responses:    make([]TokenResult, 0, len(resp.Responses)),
	}

	for i, r := range resp.Responses {
		if i >= len(tokens) {
			break
		}

		tr := TokenResult{Token: tokens[i], Success: r.Success, Err: r.Error}
		if r.Error != nil && d.isUnregistered(r.Error) {
			tr.Unregistered = true
		}

		result.Responses = append(result.Responses, tr)
	}

	return result
}

func failedChunk(tokens []string, err error) DispatchResult {
	result := DispatchResult{
		FailureCount: len(tokens),
		Responses:    make([]TokenResult, 0, len(tokens)),
	}

	for _, token := range tokens {
		result.Responses = append(result.Responses, TokenResult{Token: token, Err: err})
	}

	return result
}
