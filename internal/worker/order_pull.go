package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/domain"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/queue"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/service"
	"go.uber.org/zap"
)

type OrderPullWorker struct {
	syncService *service.SyncService
	broker      queue.Broker
	logger      *zap.SugaredLogger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewOrderPullWorker(
	syncService *service.SyncService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderPullWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderPullWorker{
		syncService: syncService,
		broker:      broker,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *OrderPullWorker) Start() error {
	w.logger.Info("starting order pull worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderPull, w.handleMessage)
}

func (w *OrderPullWorker) Stop() {
	w.logger.Info("stopping order pull worker")
	w.cancel()
}

func (w *OrderPullWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.OrderPullMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing order pull message", "task_id", msg.TaskID, "restaurant_id", msg.RestaurantID)

	if err := w.syncService.RunOrderPull(ctx, msg.RestaurantID, msg.StartTime, msg.EndTime); err != nil {
		w.logger.Errorw("failed to pull orders", "task_id", msg.TaskID, "restaurant_id", msg.RestaurantID, "error", err)
		return err
	}

	return nil
}
