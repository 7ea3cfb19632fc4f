//go:build !gcloud

package metrics

import "context"

// NewProvider in local builds has no exporter.
func NewProvider(_ context.Context, cfg Config) (*Provider, error) {
	return newNoopProvider(cfg), nil
}
