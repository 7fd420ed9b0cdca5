package myqueue

import (
	"context"
	"fmt"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	grpcCodes "google.golang.org/grpc/codes"
	grpcStatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/MarcGrol/salesbackend/lib/mylog"
)

type gcloudTaskQueue struct {
	client *cloudtasks.Client
	cfg    Config
	logger mylog.Logger
}

func newGcloudQueue(c context.Context, cfg Config) (TaskQueuer, func(), error) {
	client, err := cloudtasks.NewClient(c)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating cloudtask-client: %s", err)
	}
	if cfg.QueueName == "" {
		cfg.QueueName = "default"
	}
	return &gcloudTaskQueue{
			client: client,
			cfg:    cfg,
			logger: mylog.New("queue"),
		}, func() {
			client.Close()
		}, nil
}

func (q *gcloudTaskQueue) Enqueue(c context.Context, task Task) error {
	taskName := q.taskName(task.UID)
	_, err := q.client.CreateTask(c, &taskspb.CreateTaskRequest{
		Parent: q.queueName(),
		Task: &taskspb.Task{
			Name:         taskName, // de-duplicates
			ScheduleTime: timestamppb.New(time.Now().Add(q.cfg.Delay)),
			MessageType: &taskspb.Task_AppEngineHttpRequest{
				AppEngineHttpRequest: &taskspb.AppEngineHttpRequest{
					HttpMethod:  taskspb.HttpMethod_PUT,
					RelativeUri: task.WebhookURLPath,
					Body:        task.Payload,
				},
			},
		},
	})
	if err != nil {
		rsp, ok := grpcStatus.FromError(err)
		if ok && rsp.Code() == grpcCodes.AlreadyExists {
			q.logger.Log(c, task.UID, mylog.SeverityInfo, "Task %s already exists -> ignore", taskName)
			return nil
		}
		return fmt.Errorf("error submitting task %s to queue: %s", task.UID, err)
	}
	return nil
}

func (q *gcloudTaskQueue) queueName() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", q.cfg.ProjectID, q.cfg.LocationID, q.cfg.QueueName)
}

func (q *gcloudTaskQueue) taskName(taskUID string) string {
	return fmt.Sprintf("%s/tasks/%s", q.queueName(), taskUID)
}
