package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"subman-bot-be/internal/dto"
	"subman-bot-be/internal/pkg/logger"
	"subman-bot-be/internal/repository/specification"
	"subman-bot-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ISweepService scans subscriptions and publishes expiry advisories. The
// sweep is purely advisory: it never deactivates anyone, and it re-warns on
// every run rather than tracking who was already told.
type ISweepService interface {
	Run(ctx context.Context) error
}

type sweepService struct {
	uowFactory    unitofwork.RepositoryFactory
	pubSub        *gochannel.GoChannel
	logger        logger.ILogger
	lookaheadDays int
	now           func() time.Time
}

func NewSweepService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	logger logger.ILogger,
	lookaheadDays int,
) ISweepService {
	return &sweepService{
		uowFactory:    uowFactory,
		pubSub:        pubSub,
		logger:        logger,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
}

func NewSweepServiceWithClock(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	logger logger.ILogger,
	lookaheadDays int,
	now func() time.Time,
) ISweepService {
	return &sweepService{
		uowFactory:    uowFactory,
		pubSub:        pubSub,
		logger:        logger,
		lookaheadDays: lookaheadDays,
		now:           now,
	}
}

func (s *sweepService) Run(ctx context.Context) error {
	now := s.now()
	cutoff := now.AddDate(0, 0, s.lookaheadDays)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.WithExpirySet{},
		specification.ExpiryOnOrBefore{Cutoff: cutoff},
	)
	if err != nil {
		return err
	}

	var expiring, expired int
	for _, user := range users {
		expiry := *user.SubscriptionExpiry

		if expiry.After(now) {
			daysLeft := int(math.Ceil(expiry.Sub(now).Hours() / 24))
			if err := s.publish(dto.TopicSubscriptionExpiring, dto.SubscriptionExpiringEvent{
				UserId:      user.UserId,
				DisplayName: user.DisplayName(),
				Expiry:      expiry,
				DaysLeft:    daysLeft,
			}); err != nil {
				return err
			}
			expiring++
			continue
		}

		if err := s.publish(dto.TopicSubscriptionExpired, dto.SubscriptionExpiredEvent{
			UserId:      user.UserId,
			DisplayName: user.DisplayName(),
			Expiry:      expiry,
		}); err != nil {
			return err
		}
		expired++
	}

	s.logger.Info("service.sweep", "Expiry sweep finished", map[string]interface{}{
		"scanned":  len(users),
		"expiring": expiring,
		"expired":  expired,
	})
	return nil
}

func (s *sweepService) publish(topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), body))
}
