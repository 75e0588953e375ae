package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
	"github.com/deskbot/whatsapp-desk/internal/biz/repo"
)

// DefaultHealthInterval is the poll interval when none is configured
const DefaultHealthInterval = 5 * time.Second

// HealthChecker polls the transport and repairs the tracked state when events were missed
type HealthChecker struct {
	transport repo.TransportRepo
	tracker   *ConnectionTracker
	logger    *zap.Logger

	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(transport repo.TransportRepo, tracker *ConnectionTracker, interval time.Duration, logger *zap.Logger) *HealthChecker {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthChecker{
		transport: transport,
		tracker:   tracker,
		interval:  interval,
		logger:    logger.Named("health"),
	}
}

// Start starts the poll loop
func (h *HealthChecker) Start(ctx context.Context) {
	h.ctx, h.cancel = context.WithCancel(ctx)

	h.wg.Add(1)
	go h.loop()

	h.logger.Info("health checker started", zap.Duration("interval", h.interval))
}

// Stop stops the poll loop
func (h *HealthChecker) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
	h.wg.Wait()
	h.logger.Info("health checker stopped")
}

func (h *HealthChecker) loop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.Check()
		}
	}
}

// Check compares the transport with the tracked state once
func (h *HealthChecker) Check() {
	connected := h.transport.IsConnected()
	ready := h.tracker.Ready()

	switch {
	case connected && h.transport.IsLoggedIn() && !ready:
		h.logger.Info("session is up but not marked ready, correcting")
		h.tracker.Set(domain.StateReady, "")
	case !connected && ready:
		h.logger.Warn("session dropped without a disconnect event, correcting")
		h.tracker.Set(domain.StateDisconnected, "")
	}
}
