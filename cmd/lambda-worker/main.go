package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"petmatch-backend/internal/bootstrap"
	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/metrics"
	"petmatch-backend/internal/shared/telemetry"
	"petmatch-backend/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	app = built
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}

	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		err := workerproc.HandleMessage(ctx, app.RecommendationsService, record.Body)
		switch {
		case err == nil:
			metrics.IncRefreshJob("completed")
		case workerproc.Unrecoverable(err):
			// Malformed payloads are dropped rather than redelivered.
			telemetry.Error("worker.refresh.invalid_message", map[string]any{
				"sqs_message_id": record.MessageId,
				"error":          err.Error(),
			})
			metrics.IncRefreshJob("deleted_unrecoverable")
		default:
			telemetry.Error("worker.refresh.failed", map[string]any{
				"sqs_message_id": record.MessageId,
				"error":          err.Error(),
			})
			metrics.IncRefreshJob("failed")
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}

	return events.SQSEventResponse{BatchItemFailures: failures}, nil
}

func main() {
	lambda.Start(handler)
}
