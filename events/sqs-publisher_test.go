package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sqsSenderMock struct {
	sent []*sqs.SendMessageInput
	err  error
}

func (m *sqsSenderMock) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, params)
	return &sqs.SendMessageOutput{}, nil
}

func TestSqsPublisherSendsJsonEvent(t *testing.T) {
	mock := &sqsSenderMock{}
	p := NewSqsPublisher(mock, "https://sqs.eu-central-1.amazonaws.com/1/events")
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	err := p.Publish(context.Background(), "submission:doc1", SubmissionReceived, map[string]any{
		"submission_id": "abc",
		"group_id":      7,
	})
	require.NoError(t, err)
	require.Len(t, mock.sent, 1)
	assert.Equal(t, "https://sqs.eu-central-1.amazonaws.com/1/events", *mock.sent[0].QueueUrl)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(*mock.sent[0].MessageBody), &ev))
	assert.Equal(t, SubmissionReceived, ev.Name)
	assert.Equal(t, "submission:doc1", ev.Source)
	assert.Equal(t, "abc", ev.Payload["submission_id"])
	assert.EqualValues(t, 7, ev.Payload["group_id"])
	assert.True(t, fixed.Equal(ev.Timestamp))
}

func TestSqsPublisherWrapsSendError(t *testing.T) {
	mock := &sqsSenderMock{err: errors.New("throttled")}
	p := NewSqsPublisher(mock, "q")

	err := p.Publish(context.Background(), "s", "n", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
