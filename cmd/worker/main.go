package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"petmatch-backend/internal/bootstrap"
	"petmatch-backend/internal/queue"
	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/metrics"
	"petmatch-backend/internal/shared/telemetry"
	"petmatch-backend/internal/workerproc"
)

const (
	defaultVisibilitySeconds  = 120
	defaultWorkerConcurrency  = 4
	defaultShutdownTimeoutSec = 30
)

func main() {
	cfg := config.Load()

	queueURL := strings.TrimSpace(cfg.SQSQueueURL)
	if queueURL == "" {
		log.Fatal("PETMATCH_SQS_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	visibilitySeconds := envInt("PETMATCH_SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)
	concurrency := envInt("PETMATCH_WORKER_CONCURRENCY", defaultWorkerConcurrency)
	shutdownTimeout := time.Duration(envInt("PETMATCH_SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	awsCfg, err := queue.LoadAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	var sqsClient sqsAPI = sqs.NewFromConfig(awsCfg)

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	sem := make(chan struct{}, max(1, concurrency))
	var wg sync.WaitGroup

	log.Printf("worker started queue=%s concurrency=%d visibility=%ds", queueURL, concurrency, visibilitySeconds)

pollLoop:
	for {
		select {
		case <-ctx.Done():
			break pollLoop
		default:
		}

		resp, err := sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   int32(visibilitySeconds),
			AttributeNames:      []sqstypes.QueueAttributeName{sqstypes.QueueAttributeName("ApproximateReceiveCount")},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break pollLoop
			}
			log.Printf("receive message: %v", err)
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			metrics.IncRefreshJob("received")
			wg.Add(1)
			go func(m sqstypes.Message) {
				defer wg.Done()
				defer func() { <-sem }()
				handleMessage(ctx, app.RecommendationsService, sqsClient, queueURL, m)
			}(msg)
		}
	}

	log.Printf("shutdown requested, waiting up to %s for in-flight refreshes", shutdownTimeout)
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(shutdownTimeout):
		log.Printf("shutdown timeout reached; exiting with in-flight refreshes")
	}
}

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// handleMessage deletes the message after a successful refresh or when it can never succeed.
// Other failures leave it on the queue for redelivery.
func handleMessage(ctx context.Context, refresher workerproc.Refresher, client sqsAPI, queueURL string, msg sqstypes.Message) {
	body := aws.ToString(msg.Body)

	decoded, meta, err := workerproc.ParseMessage(body)
	if err != nil {
		fields := baseFields(msg, decoded.UserID, decoded.RequestID)
		fields["body_len"] = meta.BodyLen
		if meta.BodySHA != "" {
			fields["body_sha256"] = meta.BodySHA
		}
		fields["error"] = err.Error()
		var version workerproc.ErrUnsupportedVersion
		if errors.As(err, &version) {
			fields["version"] = version.Version
		}
		telemetry.Error("worker.refresh.invalid_message", fields)
		if workerproc.Unrecoverable(err) && deleteMessage(ctx, client, queueURL, msg, decoded.UserID, decoded.RequestID) {
			metrics.IncRefreshJob("deleted_unrecoverable")
		}
		return
	}

	telemetry.Info("worker.refresh.received", baseFields(msg, decoded.UserID, decoded.RequestID))

	jobCtx := telemetry.WithRequestID(workerproc.WithParsedMessage(ctx, decoded), decoded.RequestID)
	if err := workerproc.HandleMessage(jobCtx, refresher, body); err != nil {
		fields := baseFields(msg, decoded.UserID, decoded.RequestID)
		var procErr workerproc.ErrProcess
		if errors.As(err, &procErr) && procErr.Err != nil {
			fields["error"] = procErr.Err.Error()
		} else {
			fields["error"] = err.Error()
		}
		telemetry.Error("worker.refresh.failed", fields)
		metrics.IncRefreshJob("failed")
		return
	}

	if deleteMessage(ctx, client, queueURL, msg, decoded.UserID, decoded.RequestID) {
		telemetry.Info("worker.refresh.completed", baseFields(msg, decoded.UserID, decoded.RequestID))
		metrics.IncRefreshJob("completed")
	}
}

func deleteMessage(ctx context.Context, client sqsAPI, queueURL string, msg sqstypes.Message, userID, requestID string) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	if receipt == "" {
		fields := baseFields(msg, userID, requestID)
		fields["error"] = "missing receipt handle"
		telemetry.Error("worker.refresh.delete_failed", fields)
		return false
	}
	if _, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: aws.String(receipt),
	}); err != nil {
		fields := baseFields(msg, userID, requestID)
		fields["error"] = err.Error()
		telemetry.Error("worker.refresh.delete_failed", fields)
		return false
	}
	return true
}

func baseFields(msg sqstypes.Message, userID, requestID string) map[string]any {
	fields := map[string]any{
		"user_id":        userID,
		"sqs_message_id": aws.ToString(msg.MessageId),
		"receive_count":  receiveCount(msg),
	}
	if strings.TrimSpace(requestID) != "" {
		fields["request_id"] = requestID
	}
	return fields
}

func receiveCount(msg sqstypes.Message) int {
	if msg.Attributes == nil {
		return 0
	}
	raw := msg.Attributes["ApproximateReceiveCount"]
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
