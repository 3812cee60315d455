package handler_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/hotdrive/rental-service/rental/internal/handler"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConsumer_SetupAcrossSessions(t *testing.T) {
	t.Parallel()

	c := handler.NewConsumer(func(context.Context, model.NotificationPayload) error {
		return nil
	}, zap.NewNop())

	// the consume loop rejoins with the same handler instance after every
	// rebalance, which makes sarama call Setup once per session
	require.NotPanics(t, func() {
		require.NoError(t, c.Setup(nil))
		require.NoError(t, c.Cleanup(nil))
		require.NoError(t, c.Setup(nil))
		require.NoError(t, c.Cleanup(nil))
	})
}

type fakeSession struct {
	ctx    context.Context
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "member" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg)
}
func (s *fakeSession) Commit()                  {}
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "booking.notifications" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestConsumer_ConsumeClaim(t *testing.T) {
	t.Parallel()

	payload := model.NotificationPayload{
		Reference:     "HD-2024-07-0001",
		Email:         "maria@example.com",
		ClientName:    "Maria Santos",
		DepartureDate: model.NewDate(2024, time.July, 10),
		ReturnDate:    model.NewDate(2024, time.July, 13),
		TotalPrice:    195,
	}
	value, err := json.Marshal(payload)
	require.NoError(t, err)

	var delivered []model.NotificationPayload
	c := handler.NewConsumer(func(_ context.Context, p model.NotificationPayload) error {
		delivered = append(delivered, p)
		return nil
	}, zap.NewNop())

	session := &fakeSession{ctx: context.Background()}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 2)}
	claim.messages <- &sarama.ConsumerMessage{Value: []byte("not json")}
	claim.messages <- &sarama.ConsumerMessage{Value: value}
	close(claim.messages)

	require.NoError(t, c.ConsumeClaim(session, claim))

	require.Len(t, delivered, 1)
	require.Equal(t, "HD-2024-07-0001", delivered[0].Reference)
	// both messages marked: garbage is skipped, not replayed
	require.Len(t, session.marked, 2)
}
