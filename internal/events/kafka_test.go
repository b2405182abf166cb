package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherPublish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}

	ev := New(PostLiked, 7, "65f1c0ffee0000000000abcd", 3)
	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, []byte(ev.SubjectID), msg.Key)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(PostLiked), msg.Headers[0].Value)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
	assert.Equal(t, uint(7), decoded.ActorID)
	assert.Equal(t, uint(3), decoded.OwnerID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWriteError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := &KafkaPublisher{w: &fakeWriter{err: boom}}
	assert.ErrorIs(t, p.Publish(context.Background(), New(UserFollowed, 1, "2", 2)), boom)
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a := New(PostCreated, 1, "x", 0)
	b := New(PostCreated, 1, "x", 0)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestKafkaWriterIsAsync(t *testing.T) {
	w := newKafkaWriter([]string{"127.0.0.1:9092"}, "socialfeed.events", zap.NewNop())
	defer w.Close()

	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)
	assert.Equal(t, "socialfeed.events", w.Topic)
}

func TestLogDeliveryFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	complete := logDeliveryFailures("socialfeed.events", zap.New(core))

	complete([]kafka.Message{{Key: []byte("p1")}}, nil)
	assert.Zero(t, logs.Len())

	complete([]kafka.Message{
		{Headers: []kafka.Header{{Key: "event_type", Value: []byte(PostLiked)}}},
		{Headers: []kafka.Header{{Key: "event_type", Value: []byte(UserFollowed)}}},
	}, errors.New("leader not available"))

	entries := logs.FilterMessage("event delivery failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["messages"])
	assert.Equal(t, []interface{}{string(PostLiked), string(UserFollowed)}, fields["event_types"])
}
