package service

import (
	"context"
	"encoding/json"
	"fmt"

	"subman-bot-be/internal/constant"
	"subman-bot-be/internal/dto"
	"subman-bot-be/internal/gateway"
	"subman-bot-be/internal/pkg/logger"
	"subman-bot-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const expiryDateLayout = "2006-01-02"

// INotifierService delivers sweep advisories over the chat gateway. Expiring
// subscriptions warn both the user and the admins; expired ones only advise
// the admins, since the user's access is already gone.
type INotifierService interface {
	Consume(ctx context.Context) error
}

type notifierService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	gw         gateway.Gateway
	logger     logger.ILogger
}

func NewNotifierService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	gw gateway.Gateway,
	logger logger.ILogger,
) INotifierService {
	return &notifierService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		gw:         gw,
		logger:     logger,
	}
}

func (s *notifierService) Consume(ctx context.Context) error {
	expiring, err := s.pubSub.Subscribe(ctx, dto.TopicSubscriptionExpiring)
	if err != nil {
		return err
	}
	expired, err := s.pubSub.Subscribe(ctx, dto.TopicSubscriptionExpired)
	if err != nil {
		return err
	}

	go func() {
		for msg := range expiring {
			s.processExpiring(ctx, msg)
		}
	}()
	go func() {
		for msg := range expired {
			s.processExpired(ctx, msg)
		}
	}()

	return nil
}

func (s *notifierService) processExpiring(ctx context.Context, msg *message.Message) {
	var evt dto.SubscriptionExpiringEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.logger.Error("service.notifier", "Failed to unmarshal expiring event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying won't help
		return
	}

	date := evt.Expiry.Format(expiryDateLayout)

	if err := s.gw.SendMessage(ctx, evt.UserId, fmt.Sprintf(constant.MsgUserExpiryWarning, evt.DaysLeft, date)); err != nil {
		s.logger.Warn("service.notifier", "Failed to warn user", map[string]interface{}{
			"user_id": evt.UserId,
			"error":   err.Error(),
		})
	}

	s.broadcastAdmins(ctx, fmt.Sprintf(constant.MsgAdminExpiryWarning, evt.DisplayName, evt.DaysLeft, date))
	msg.Ack()
}

func (s *notifierService) processExpired(ctx context.Context, msg *message.Message) {
	var evt dto.SubscriptionExpiredEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.logger.Error("service.notifier", "Failed to unmarshal expired event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	s.broadcastAdmins(ctx, fmt.Sprintf(constant.MsgAdminExpired, evt.DisplayName, evt.Expiry.Format(expiryDateLayout)))
	msg.Ack()
}

func (s *notifierService) broadcastAdmins(ctx context.Context, text string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	admins, err := uow.AdminRepository().FindAll(ctx)
	if err != nil {
		s.logger.Error("service.notifier", "Failed to load admins", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	for _, admin := range admins {
		if err := s.gw.SendMessage(ctx, admin.AdminId, text); err != nil {
			s.logger.Warn("service.notifier", "Failed to notify admin", map[string]interface{}{
				"admin_id": admin.AdminId,
				"error":    err.Error(),
			})
		}
	}
}
