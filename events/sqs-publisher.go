package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// sqsSender is the subset of *sqs.Client used for publishing.
type sqsSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type SqsPublisher struct {
	sqsClient sqsSender
	queueUrl  string
	now       func() time.Time
}

func NewSqsPublisher(sqsClient sqsSender, queueUrl string) *SqsPublisher {
	return &SqsPublisher{
		sqsClient: sqsClient,
		queueUrl:  queueUrl,
		now:       time.Now,
	}
}

func (p *SqsPublisher) Publish(ctx context.Context, source string, name string, payload map[string]any) error {
	jsonEvent, err := json.Marshal(Event{
		Source:    source,
		Name:      name,
		Payload:   payload,
		Timestamp: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueUrl),
		MessageBody: aws.String(string(jsonEvent)),
	})
	if err != nil {
		return fmt.Errorf("failed to send event to queue: %w", err)
	}

	return nil
}
