package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"empire-service/internal/config"
	"empire-service/internal/repository/model"
)

const topic = "empire-world"

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      *kafka.Writer
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(zap.L()),
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

type travelRequestUpdateMessage struct {
	Request    *model.TravelRequest `json:"request"`
	ChangeType ChangeType           `json:"changeType"`
}

type citizenUpdateMessage struct {
	Citizen    *model.Citizen `json:"citizen"`
	ChangeType ChangeType     `json:"changeType"`
}

type ledgerAppendMessage struct {
	Entries []model.LedgerEntry `json:"entries"`
}

type dayAdvancedMessage struct {
	Calendar model.Calendar `json:"calendar"`
}

func (k *kafkaNotifier) TravelRequestUpdate(ctx context.Context, req *model.TravelRequest, changeType ChangeType) error {
	return k.publishMessage(ctx, "TravelRequestUpdate", travelRequestUpdateMessage{Request: req, ChangeType: changeType})
}

func (k *kafkaNotifier) CitizenUpdate(ctx context.Context, citizen *model.Citizen, changeType ChangeType) error {
	return k.publishMessage(ctx, "CitizenUpdate", citizenUpdateMessage{Citizen: citizen, ChangeType: changeType})
}

func (k *kafkaNotifier) LedgerAppend(ctx context.Context, entries []model.LedgerEntry) error {
	return k.publishMessage(ctx, "LedgerAppend", ledgerAppendMessage{Entries: entries})
}

func (k *kafkaNotifier) DayAdvanced(ctx context.Context, calendar model.Calendar) error {
	return k.publishMessage(ctx, "DayAdvanced", dayAdvancedMessage{Calendar: calendar})
}

func (k *kafkaNotifier) publishMessage(ctx context.Context, messageType string, message interface{}) error {
	bytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := k.w.WriteMessages(ctx, kafka.Message{
		Value:   bytes,
		Headers: []kafka.Header{{Key: "X-Message-Type", Value: []byte(messageType)}},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
