//go:build gcloud

package config

import "errors"

// Validate checks the Cloud Run build, which publishes task.reminded to
// Pub/Sub in GCLOUD_PROJECT_ID and never reads NATS_URL.
func (c *PubSubConfig) Validate() error {
	if c.GCloudProjectID == "" {
		return errors.New("GCLOUD_PROJECT_ID is required to publish task reminded events")
	}

	if c.NatsURL != "" {
		return errors.New("NATS_URL is set but the gcloud build publishes to Pub/Sub; unset it")
	}

	return nil
}
