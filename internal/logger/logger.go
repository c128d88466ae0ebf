package logger

import "go.uber.org/zap"

var L = zap.NewNop()

// Init replaces the no-op logger with a production zap logger. Call once
// from main before anything logs.
func Init() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	L = l
	return nil
}

func Sync() {
	_ = L.Sync()
}
