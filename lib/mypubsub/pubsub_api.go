package mypubsub

import "context"

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
	Subscribe(c context.Context, topic string, urlToPostTo string) error
}

// New returns a Cloud Pub/Sub client when projectID is set and otherwise a fake that pushes directly to the subscribed urls.
func New(c context.Context, projectID string) (PubSub, func(), error) {
	if projectID != "" {
		return newGcloudPubSub(c, projectID)
	}
	return newFakePubSub(c)
}
