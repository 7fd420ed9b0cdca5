package myqueue

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/MarcGrol/salesbackend/lib/myhttpclient"
	"github.com/MarcGrol/salesbackend/lib/mylog"
)

type fakeTaskQueue struct {
	sync.Mutex
	tasks   []Task
	baseURL string
	delay   time.Duration
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
}

func newFakeQueue(c context.Context, cfg Config) (TaskQueuer, func(), error) {
	return &fakeTaskQueue{
		baseURL: cfg.LocalBaseURL,
		delay:   cfg.Delay,
		sender:  myhttpclient.New(10 * time.Second),
		logger:  mylog.New("queue"),
	}, func() {}, nil
}

func (q *fakeTaskQueue) Enqueue(c context.Context, task Task) error {
	q.Lock()
	q.tasks = append(q.tasks, task)
	q.Unlock()

	if q.baseURL != "" {
		go q.deliver(task)
	}
	return nil
}

func (q *fakeTaskQueue) deliver(task Task) {
	c := context.Background()
	time.Sleep(q.delay)

	status, _, err := q.sender.Send(c, http.MethodPut, q.baseURL+task.WebhookURLPath, task.Payload)
	if err != nil {
		q.logger.Log(c, task.UID, mylog.SeverityError, "Error delivering task %s: %s", task.WebhookURLPath, err)
		return
	}
	if status >= 300 {
		q.logger.Log(c, task.UID, mylog.SeverityWarn, "Task %s returned http-status %d", task.WebhookURLPath, status)
	}
}
