package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"payout-service/internal/consumers"
	"payout-service/internal/services"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.SettlementProcessor
}

func NewWorker(processor *consumers.SettlementProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleSettlement(ctx context.Context, t *asynq.Task) error {
	var p services.SettlementJobDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessSettlement(p)
	return nil
}

func (w *Worker) HandleNotification(ctx context.Context, t *asynq.Task) error {
	var p services.NotificationEvent
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessNotification(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.SettlementProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeWithdrawalSettle, worker.HandleSettlement)
	mux.HandleFunc(TypeWithdrawalNotify, worker.HandleNotification)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
