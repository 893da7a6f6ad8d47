package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/networth-backend/internal/domain"
)

// MockChannel is a mock implementation of the amqp channel for testing
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func TestPublishSnapshot(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "networth", "direct", true, false, false, false, amqp091.Table(nil)).Return(nil)
	ch.On("PublishWithContext", mock.Anything, "networth", SnapshotRoutingKey, false, false,
		mock.MatchedBy(func(msg amqp091.Publishing) bool {
			decoded, err := SnapshotRecordedMessageFromJSON(msg.Body)
			return err == nil &&
				msg.ContentType == "application/json" &&
				msg.DeliveryMode == amqp091.Persistent &&
				decoded.Date == "2024-03-01" &&
				decoded.NetWorth == "600"
		})).Return(nil)

	publisher, err := newPublisher(ch, "networth", nil)
	require.NoError(t, err)

	err = publisher.PublishSnapshot(context.Background(), domain.NetWorthEntry{
		Date:             "2024-03-01",
		TotalAssets:      decimal.NewFromInt(1000),
		TotalLiabilities: decimal.NewFromInt(400),
		NetWorth:         decimal.NewFromInt(600),
		CreatedAt:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublishSnapshot_Failure(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	publisher, err := newPublisher(ch, "networth", nil)
	require.NoError(t, err)

	err = publisher.PublishSnapshot(context.Background(), domain.NetWorthEntry{Date: "2024-03-01"})

	assert.ErrorContains(t, err, "channel closed")
}

func TestNewPublisher_DeclareFailure(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access refused"))

	_, err := newPublisher(ch, "networth", nil)

	assert.ErrorContains(t, err, "declare exchange")
}

func TestSnapshotRecordedMessage_FromEntry(t *testing.T) {
	msg := NewSnapshotRecordedMessage(domain.NetWorthEntry{
		Date:             "2024-03-01",
		TotalAssets:      decimal.RequireFromString("10.50"),
		TotalLiabilities: decimal.Zero,
		NetWorth:         decimal.RequireFromString("10.50"),
	})

	assert.Equal(t, "10.5", msg.TotalAssets)
	assert.False(t, msg.RecordedAt.IsZero())
}
