package whatsapp

import (
	"go.uber.org/zap"

	waLog "go.mau.fi/whatsmeow/util/log"
)

// zapLogger bridges whatsmeow's logger to zap
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewLogger wraps a zap logger as a whatsmeow logger
func NewLogger(logger *zap.Logger) waLog.Logger {
	return &zapLogger{s: logger.Sugar()}
}

func (l *zapLogger) Warnf(msg string, args ...interface{})  { l.s.Warnf(msg, args...) }
func (l *zapLogger) Errorf(msg string, args ...interface{}) { l.s.Errorf(msg, args...) }
func (l *zapLogger) Infof(msg string, args ...interface{})  { l.s.Infof(msg, args...) }
func (l *zapLogger) Debugf(msg string, args ...interface{}) { l.s.Debugf(msg, args...) }

func (l *zapLogger) Sub(module string) waLog.Logger {
	return &zapLogger{s: l.s.Named(module)}
}
