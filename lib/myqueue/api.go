package myqueue

import (
	"context"
	"time"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
}

type Config struct {
	ProjectID  string
	LocationID string
	QueueName  string
	// Delay postpones delivery so that the enqueuing transaction can finish first.
	Delay time.Duration
	// LocalBaseURL is where the fake queue delivers tasks. Empty means tasks are only recorded.
	LocalBaseURL string
}

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
}

// New returns a Cloud Tasks queue when a project is configured and a fake otherwise.
func New(c context.Context, cfg Config) (TaskQueuer, func(), error) {
	if cfg.ProjectID != "" {
		return newGcloudQueue(c, cfg)
	}
	return newFakeQueue(c, cfg)
}
