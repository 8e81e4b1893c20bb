package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"chat-service/internal/config"
	"chat-service/internal/permission"
	"chat-service/internal/repository/model"
	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      *kafka.Writer
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(logger.Desugar()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
	}
}

func (k *kafkaNotifier) RoleUpdate(ctx context.Context, role *model.Role, changeType ChangeType) error {
	return k.publishMessage(ctx, &RoleUpdateMessage{Role: role, ChangeType: changeType}, role.ServerId)
}

func (k *kafkaNotifier) RolesReordered(ctx context.Context, serverId string, positions map[string]int32) error {
	return k.publishMessage(ctx, &RolesReorderedMessage{ServerId: serverId, Positions: positions}, serverId)
}

func (k *kafkaNotifier) MemberRolesUpdate(ctx context.Context, serverId string, userId string, roleId string, changeType ChangeType) error {
	msg := &MemberRolesUpdateMessage{ServerId: serverId, UserId: userId, RoleId: roleId, ChangeType: changeType}
	return k.publishMessage(ctx, msg, serverId)
}

func (k *kafkaNotifier) OverrideUpdate(ctx context.Context, target OverrideTarget, targetId string, roleId string, flags permission.Flags) error {
	msg := &OverrideUpdateMessage{Target: target, TargetId: targetId, RoleId: roleId, Permissions: flags}
	return k.publishMessage(ctx, msg, targetId)
}

func (k *kafkaNotifier) PresenceUpdate(ctx context.Context, userId string, online bool) error {
	msg := &PresenceUpdateMessage{UserId: userId, Online: online, Timestamp: time.Now().UTC()}
	return k.publishMessage(ctx, msg, userId)
}

func (k *kafkaNotifier) publishMessage(ctx context.Context, msg message, key string) error {
	kafkaMsg, err := encodeMessage(msg, key)
	if err != nil {
		return err
	}

	if err := k.w.WriteMessages(ctx, kafkaMsg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// encodeMessage keys messages so that all events of one server (or user) land on the same partition.
func encodeMessage(msg message, key string) (kafka.Message, error) {
	bytes, err := sonic.Marshal(msg)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	return kafka.Message{
		Topic:   msg.topic(),
		Key:     []byte(key),
		Value:   bytes,
		Headers: []kafka.Header{{Key: eventTypeHeader, Value: []byte(msg.eventType())}},
	}, nil
}
