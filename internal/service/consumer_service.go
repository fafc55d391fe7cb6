package service

import (
	"context"
	"encoding/json"

	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService reacts to session activity events: it records them on the
// audit log and drops any quiz answer key cached for the affected session.
// The ingestion path purges the key synchronously as well; this purge is
// idempotent.
type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	answerRepository *memory.AnswerRepository
	log              logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	answerRepository *memory.AnswerRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		answerRepository: answerRepository,
		log:              log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var activity events.SessionActivity
	if err := json.Unmarshal(msg.Payload, &activity); err != nil {
		cs.log.Warn("consumer", "failed to unmarshal session activity event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Ack invalid messages to prevent infinite redelivery
		msg.Ack()
		return
	}

	// Any change to a session's document set invalidates its answer key.
	cs.answerRepository.Delete(activity.SessionId)

	cs.log.Info("consumer", "session activity", map[string]interface{}{
		"session_id":  activity.SessionId,
		"action":      activity.Action,
		"source_type": activity.SourceType,
		"chunk_count": activity.ChunkCount,
	})
	msg.Ack()
}
