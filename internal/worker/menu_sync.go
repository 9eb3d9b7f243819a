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

type MenuSyncWorker struct {
	syncService *service.SyncService
	broker      queue.Broker
	logger      *zap.SugaredLogger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewMenuSyncWorker(
	syncService *service.SyncService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *MenuSyncWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &MenuSyncWorker{
		syncService: syncService,
		broker:      broker,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *MenuSyncWorker) Start() error {
	w.logger.Info("starting menu sync worker")

	return w.broker.Subscribe(w.ctx, queue.QueueMenuSync, w.handleMessage)
}

func (w *MenuSyncWorker) Stop() {
	w.logger.Info("stopping menu sync worker")
	w.cancel()
}

func (w *MenuSyncWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.MenuSyncMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing menu sync message", "task_id", msg.TaskID, "restaurant_id", msg.RestaurantID)

	if err := w.syncService.RunMenuSync(ctx, msg.RestaurantID); err != nil {
		w.logger.Errorw("failed to sync menu", "task_id", msg.TaskID, "restaurant_id", msg.RestaurantID, "error", err)
		return err
	}

	return nil
}
