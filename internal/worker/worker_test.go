package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestMenuSyncWorker_RejectsMalformedMessage(t *testing.T) {
	w := NewMenuSyncWorker(nil, nil, zap.NewNop().Sugar())
	defer w.Stop()

	if err := w.handleMessage(context.Background(), []byte("not json")); err == nil {
		t.Error("Expected an error for malformed message")
	}
}

func TestOrderPullWorker_RejectsMalformedMessage(t *testing.T) {
	w := NewOrderPullWorker(nil, nil, zap.NewNop().Sugar())
	defer w.Stop()

	if err := w.handleMessage(context.Background(), []byte("{")); err == nil {
		t.Error("Expected an error for malformed message")
	}
}
