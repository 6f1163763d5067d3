// Package notice carries the non-blocking messages the navigation
// engine surfaces to the user: recovery hints, access-denied
// explanations, and generic failure notices. Presenters decide how a
// notice is shown; the engine only emits them.
package notice

import (
	"log/slog"
	"strings"
)

// Level represents the notice severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is one user-facing message.
type Notice struct {
	Level   Level
	Title   string
	Message string

	// Details is optional expanded text.
	Details string

	// Suggestions are alternative paths the user may have meant.
	Suggestions []string
}

// Presenter receives notices from the engine.
type Presenter interface {
	Show(n Notice)
}

// Func adapts a plain function to a Presenter.
type Func func(Notice)

func (f Func) Show(n Notice) { f(n) }

// Log is a Presenter that writes notices to a structured logger.
type Log struct {
	Logger *slog.Logger
}

// NewLog returns a logging presenter.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{Logger: logger.With("component", "notice")}
}

func (l *Log) Show(n Notice) {
	attrs := []any{"title", n.Title, "message", n.Message}
	if n.Details != "" {
		attrs = append(attrs, "details", n.Details)
	}
	if len(n.Suggestions) > 0 {
		attrs = append(attrs, "suggestions", strings.Join(n.Suggestions, ", "))
	}
	switch n.Level {
	case LevelError:
		l.Logger.Error("notice", attrs...)
	case LevelWarning:
		l.Logger.Warn("notice", attrs...)
	default:
		l.Logger.Info("notice", attrs...)
	}
}

// Multi fans a notice out to several presenters.
type Multi []Presenter

func (m Multi) Show(n Notice) {
	for _, p := range m {
		if p != nil {
			p.Show(n)
		}
	}
}
