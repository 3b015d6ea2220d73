package service

import "go.uber.org/zap"

// Notifier surfaces user-visible confirmations (the toasts of the
// storefront UI). Services emit through it instead of logging directly so
// tests can capture what the user would have seen.
type Notifier interface {
	Notify(title, message string)
}

// LogNotifier writes notifications through a zap logger.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Notify(title, message string) {
	n.Log.Info(title, zap.String("detail", message))
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) {}
