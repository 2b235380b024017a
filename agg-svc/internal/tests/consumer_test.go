package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"kitchen-stock/agg-svc/internal/domain"
	"kitchen-stock/agg-svc/internal/mocks"
	"kitchen-stock/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func orderEvent(id int) domain.OrderEvent {
	return domain.OrderEvent{
		Type:      domain.EventOrderPlaced,
		OrderID:   id,
		CreatedAt: placedAt,
		Subtotal:  decimal.NewFromInt(4),
		Total:     decimal.RequireFromString("4.84"),
		Items:     []domain.EventItem{{DishID: 10, DishName: "Bread", Quantity: 2, LineCost: decimal.NewFromInt(4)}},
	}
}

func TestConsumer_ProcessOrder(t *testing.T) {
	tests := []struct {
		name           string
		setupMockStore func(*mocks.StoreInterface)
		wantErr        bool
	}{
		{
			name: "success",
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, orderEvent(1)).Return(true, nil).Once()
			},
		},
		{
			name: "duplicate delivery",
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, orderEvent(1)).Return(false, nil).Once()
			},
		},
		{
			name: "store error",
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, orderEvent(1)).Return(false, errors.New("redis down")).Once()
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := &service.Consumer{
				Store: mockStore,
			}

			err := consumer.ProcessOrder(context.Background(), orderEvent(1))

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_IgnoresOtherEventTypes(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	consumer := &service.Consumer{
		Store: mockStore,
	}

	event := orderEvent(1)
	event.Type = "order_cancelled"

	assert.NoError(t, consumer.ProcessOrder(context.Background(), event))
	mockStore.AssertNotCalled(t, "RecordOrder", mock.Anything, mock.Anything)
}

// scriptedReader hands out queued messages, records commits, then cancels
// the consumer once the queue is empty.
type scriptedReader struct {
	messages  []kafka.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *scriptedReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, msg := range msgs {
		r.committed = append(r.committed, msg.Offset)
	}
	return nil
}

func isOrder(id int) interface{} {
	return mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.OrderID == id && e.Total.Equal(decimal.RequireFromString("4.84"))
	})
}

func TestConsumer_StartCommitsAfterRecording(t *testing.T) {
	payload, err := json.Marshal(orderEvent(3))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &scriptedReader{
		messages: []kafka.Message{{Offset: 10, Value: []byte("{not json")}, {Offset: 11, Value: payload}},
		cancel:   cancel,
	}

	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("RecordOrder", mock.Anything, isOrder(3)).Return(true, nil).Once()

	err = service.NewConsumer(reader, mockStore).Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int64{10, 11}, reader.committed)
}

func TestConsumer_StartRetriesFailedMessageBeforeCommitting(t *testing.T) {
	payload, err := json.Marshal(orderEvent(4))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &scriptedReader{
		messages: []kafka.Message{{Offset: 20, Value: payload}},
		cancel:   cancel,
	}

	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("RecordOrder", mock.Anything, isOrder(4)).Return(false, errors.New("redis down")).Once()
	mockStore.On("RecordOrder", mock.Anything, isOrder(4)).Return(true, nil).Once()

	consumer := service.NewConsumer(reader, mockStore)
	consumer.RetryDelay = time.Millisecond
	err = consumer.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int64{20}, reader.committed)
	mockStore.AssertNumberOfCalls(t, "RecordOrder", 2)
}

func TestConsumer_StartLeavesOffsetUncommittedOnShutdown(t *testing.T) {
	payload, err := json.Marshal(orderEvent(5))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &scriptedReader{
		messages: []kafka.Message{{Offset: 30, Value: payload}},
		cancel:   cancel,
	}

	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("RecordOrder", mock.Anything, isOrder(5)).
		Run(func(mock.Arguments) { cancel() }).
		Return(false, errors.New("redis down")).Once()

	consumer := service.NewConsumer(reader, mockStore)
	consumer.RetryDelay = time.Hour
	err = consumer.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reader.committed)
}
