//go:build !gcloud

package config

import (
	"fmt"
	"net/url"
)

// Validate accepts an empty NATS_URL, which disables event publishing.
func (c *PubSubConfig) Validate() error {
	if c.NatsURL == "" {
		return nil
	}

	u, err := url.Parse(c.NatsURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid NATS_URL %q", c.NatsURL)
	}

	return nil
}
