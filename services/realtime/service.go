// File: questly/services/realtime/service.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"questly/models"
	"questly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service is the realtime feed fan-out. Events published by any instance go
// through Redis pub/sub so every instance's connected clients see them.
type Service struct {
	hub        *feedHub
	rdb        *redis.Client
	authorizer Authorizer
	logger     *zap.Logger
}

func NewService(rdb *redis.Client, authorizer Authorizer) *Service {
	return &Service{
		hub:        newFeedHub(),
		rdb:        rdb,
		authorizer: authorizer,
		logger:     utils.GetLogger(),
	}
}

// PublishActivity pushes an activity entry onto a channel.
func (s *Service) PublishActivity(ctx context.Context, channel string, activity models.Activity) error {
	return s.publish(ctx, channel, Event{Kind: EventKindActivity, Activity: &activity})
}

// PublishToast pushes a transient toast onto a channel.
func (s *Service) PublishToast(ctx context.Context, channel string, toast models.Toast) error {
	return s.publish(ctx, channel, Event{Kind: EventKindToast, Toast: &toast})
}

func (s *Service) publish(ctx context.Context, channel string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}
	if err := s.rdb.Publish(ctx, utils.FeedChannelPrefix+channel, data).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}
	return nil
}

// Start runs the Redis bridge until ctx is cancelled. Messages arriving on
// any feed:* channel are fanned out to local subscribers.
func (s *Service) Start(ctx context.Context) {
	sub := s.rdb.PSubscribe(ctx, utils.FeedChannelPrefix+"*")
	ch := sub.Channel()

	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.dispatch(msg.Channel, []byte(msg.Payload))
			}
		}
	}()
}

func (s *Service) dispatch(redisChannel string, payload []byte) {
	channel := redisChannel[len(utils.FeedChannelPrefix):]

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn("Dropping malformed feed event", zap.String("channel", channel), zap.Error(err))
		return
	}

	switch event.Kind {
	case EventKindActivity:
		if event.Activity == nil {
			return
		}
		frame := wsFrame{
			Type:    "feed.event",
			Payload: mustJSON(event.Activity),
		}
		// Activity frames are retained for replay; toasts are transient
		// and a late subscriber simply misses them.
		s.hub.remember(channel, frame)
		s.hub.broadcast(channel, frame)
	case EventKindToast:
		if event.Toast == nil {
			return
		}
		s.hub.broadcast(channel, wsFrame{
			Type:    "feed.toast",
			Payload: mustJSON(event.Toast),
		})
	default:
		s.logger.Warn("Unknown feed event kind", zap.String("kind", event.Kind))
	}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		utils.GetLogger().Error("Failed to marshal feed frame payload", zap.Error(err))
		return nil
	}
	return b
}
