package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"subman-bot-be/internal/constant"
	"subman-bot-be/internal/dto"
	"subman-bot-be/internal/gateway"
	"subman-bot-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSend struct {
	ChatId int64
	Text   string
}

// recordingGateway captures outbound messages for assertions.
type recordingGateway struct {
	mu    sync.Mutex
	Sends []recordedSend
}

func (g *recordingGateway) SendMessage(_ context.Context, chatId int64, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Sends = append(g.Sends, recordedSend{ChatId: chatId, Text: text})
	return nil
}

func (g *recordingGateway) SendButtons(context.Context, int64, string, [][]gateway.Button) error {
	return nil
}

func (g *recordingGateway) ForwardMessage(context.Context, int64, int64, int64) error {
	return nil
}

func (g *recordingGateway) EditMessageText(context.Context, int64, int64, string) error {
	return nil
}

func (g *recordingGateway) AnswerCallback(context.Context, string, string) error {
	return nil
}

func (g *recordingGateway) sendsTo(chatId int64) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var texts []string
	for _, s := range g.Sends {
		if s.ChatId == chatId {
			texts = append(texts, s.Text)
		}
	}
	return texts
}

func (g *recordingGateway) total() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Sends)
}

func setupNotifier(t *testing.T, adminIds ...int64) (*gochannel.GoChannel, *recordingGateway, context.CancelFunc) {
	t.Helper()

	factory := setupTestDB(t)
	for _, id := range adminIds {
		seedAdmin(t, factory, id)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	gw := &recordingGateway{}
	svc := NewNotifierService(pubSub, factory, gw, logger.NewZapLogger(t.TempDir()+"/notifier.log", false))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Consume(ctx))

	return pubSub, gw, cancel
}

func publishEvent(t *testing.T, pubSub *gochannel.GoChannel, topic string, payload interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), body)))
}

func TestNotifierExpiringWarnsUserAndAdmins(t *testing.T) {
	firstAdmin := testAdminId
	secondAdmin := testAdminId + 1
	pubSub, gw, cancel := setupNotifier(t, firstAdmin, secondAdmin)
	defer cancel()

	expiry := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	publishEvent(t, pubSub, dto.TopicSubscriptionExpiring, dto.SubscriptionExpiringEvent{
		UserId:      testUserId,
		DisplayName: "Some One (2000)",
		Expiry:      expiry,
		DaysLeft:    2,
	})

	require.Eventually(t, func() bool {
		return gw.total() == 3
	}, 2*time.Second, 10*time.Millisecond, "expected the user and both admins to be notified")

	userTexts := gw.sendsTo(testUserId)
	require.Len(t, userTexts, 1)
	assert.Equal(t, fmt.Sprintf(constant.MsgUserExpiryWarning, 2, "2025-06-03"), userTexts[0])

	adminWarning := fmt.Sprintf(constant.MsgAdminExpiryWarning, "Some One (2000)", 2, "2025-06-03")
	for _, adminId := range []int64{firstAdmin, secondAdmin} {
		texts := gw.sendsTo(adminId)
		require.Len(t, texts, 1)
		assert.Equal(t, adminWarning, texts[0])
	}
}

// Expired subscriptions only advise the admins; the user's access is already
// gone and the removal itself is a manual admin action.
func TestNotifierExpiredAdvisesAdminsOnly(t *testing.T) {
	pubSub, gw, cancel := setupNotifier(t, testAdminId)
	defer cancel()

	expiry := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)
	publishEvent(t, pubSub, dto.TopicSubscriptionExpired, dto.SubscriptionExpiredEvent{
		UserId:      testUserId,
		DisplayName: "Some One (2000)",
		Expiry:      expiry,
	})

	require.Eventually(t, func() bool {
		return gw.total() == 1
	}, 2*time.Second, 10*time.Millisecond, "expected exactly one admin advisory")

	assert.Empty(t, gw.sendsTo(testUserId))

	texts := gw.sendsTo(testAdminId)
	require.Len(t, texts, 1)
	assert.Equal(t, fmt.Sprintf(constant.MsgAdminExpired, "Some One (2000)", "2025-05-30"), texts[0])
}

// A payload that doesn't unmarshal is dropped without stalling the stream.
func TestNotifierMalformedPayloadIsDropped(t *testing.T) {
	pubSub, gw, cancel := setupNotifier(t, testAdminId)
	defer cancel()

	require.NoError(t, pubSub.Publish(dto.TopicSubscriptionExpiring,
		message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	publishEvent(t, pubSub, dto.TopicSubscriptionExpiring, dto.SubscriptionExpiringEvent{
		UserId:      testUserId,
		DisplayName: "Some One (2000)",
		Expiry:      time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
		DaysLeft:    2,
	})

	// The valid event behind the garbage still gets through.
	require.Eventually(t, func() bool {
		return len(gw.sendsTo(testUserId)) == 1
	}, 2*time.Second, 10*time.Millisecond, "expected the valid event to be processed")
}
