package mypubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MarcGrol/salesbackend/lib/myevents"
	"github.com/MarcGrol/salesbackend/lib/myhttpclient"
	"github.com/MarcGrol/salesbackend/lib/mylog"
)

// fakePubSub pushes published messages to the subscribed urls, like a push subscription would.
// Delivery is attempted once, in the background.
type fakePubSub struct {
	sync.Mutex
	topics        map[string]bool
	subscriptions map[string][]string
	sender        myhttpclient.HTTPSender
	logger        mylog.Logger
}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return &fakePubSub{
		topics:        map[string]bool{},
		subscriptions: map[string][]string{},
		sender:        myhttpclient.New(10 * time.Second),
		logger:        mylog.New("pubsub"),
	}, func() {}, nil
}

func (ps *fakePubSub) Subscribe(c context.Context, topic string, urlToPostTo string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true
	ps.subscriptions[topic] = append(ps.subscriptions[topic], urlToPostTo)
	return nil
}

func (ps *fakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true
	return nil
}

func (ps *fakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	urls := append([]string{}, ps.subscriptions[topic]...)
	ps.Unlock()

	body, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: []byte(data),
		},
		Subscription: fmt.Sprintf("%s-push", topic),
	})
	if err != nil {
		return err
	}

	for _, url := range urls {
		go ps.deliver(url, body)
	}

	return nil
}

func (ps *fakePubSub) deliver(url string, body []byte) {
	c := context.Background()

	status, _, err := ps.sender.Send(c, http.MethodPost, url, body)
	if err != nil {
		ps.logger.Log(c, "", mylog.SeverityError, "Error pushing to %s: %s", url, err)
		return
	}
	if status >= 300 {
		ps.logger.Log(c, "", mylog.SeverityWarn, "Push to %s returned http-status %d", url, status)
	}
}
