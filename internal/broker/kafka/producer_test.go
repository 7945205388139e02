package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	last []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.last = append([]kafka.Message{}, msgs...)
	return w.err
}

func TestProducer_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := newProducerWithWriter(fw)

	require.NoError(t, p.Publish(context.Background(), "cases.updated", []byte("recCase1"), []byte(`{"status":"Resolved"}`)))
	require.Len(t, fw.last, 1)
	require.Equal(t, "cases.updated", fw.last[0].Topic)
	require.Equal(t, []byte("recCase1"), fw.last[0].Key)
}

func TestProducer_PublishError(t *testing.T) {
	fw := &fakeWriter{err: context.DeadlineExceeded}
	p := newProducerWithWriter(fw)

	err := p.Publish(context.Background(), "cases.updated", nil, nil)
	require.Error(t, err)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:0"})
	require.NotNil(t, p)
}
