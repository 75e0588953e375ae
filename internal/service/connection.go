package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deskbot/whatsapp-desk/internal/biz/domain"
)

// ConnectionTracker holds the messaging session state.
// Set is the only writer; readers may call from any goroutine.
type ConnectionTracker struct {
	mu        sync.RWMutex
	state     domain.ConnectionState
	qrCode    string
	updatedAt time.Time

	now      func() time.Time
	logger   *zap.Logger
	onChange func(domain.ConnectionState)
}

// NewConnectionTracker creates a tracker starting Disconnected
func NewConnectionTracker(logger *zap.Logger) *ConnectionTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionTracker{
		state:     domain.StateDisconnected,
		updatedAt: time.Now(),
		now:       time.Now,
		logger:    logger.Named("connection"),
	}
}

// OnChange registers a callback invoked after every state transition
func (t *ConnectionTracker) OnChange(fn func(domain.ConnectionState)) {
	t.onChange = fn
}

// Set updates the state. The QR code is kept only while Connecting.
func (t *ConnectionTracker) Set(state domain.ConnectionState, qrCode string) {
	t.mu.Lock()
	prev := t.state
	t.state = state
	if state == domain.StateConnecting {
		t.qrCode = qrCode
	} else {
		t.qrCode = ""
	}
	t.updatedAt = t.now()
	t.mu.Unlock()

	if prev != state {
		t.logger.Info("connection state changed",
			zap.String("from", string(prev)),
			zap.String("to", string(state)))
	}
	if t.onChange != nil {
		t.onChange(state)
	}
}

// Apply maps a transport lifecycle event onto the state
func (t *ConnectionTracker) Apply(evt domain.ConnectionEvent) {
	if evt.Reason != "" {
		t.logger.Debug("connection event", zap.String("kind", string(evt.Kind)), zap.String("reason", evt.Reason))
	}
	t.Set(evt.TargetState(), evt.QRCode)
}

// State returns the current state
func (t *ConnectionTracker) State() domain.ConnectionState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Ready reports whether the session is Ready
func (t *ConnectionTracker) Ready() bool {
	return t.State().IsReady()
}

// QRCode returns the pending pairing code, empty when none
func (t *ConnectionTracker) QRCode() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.qrCode
}

// Snapshot returns a consistent view of the state
func (t *ConnectionTracker) Snapshot() domain.ConnectionStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return domain.ConnectionStatus{
		State:     t.state,
		Ready:     t.state.IsReady(),
		HasQR:     t.qrCode != "",
		UpdatedAt: t.updatedAt,
	}
}
