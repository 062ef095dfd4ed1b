package component

import (
	"context"
	"log/slog"
	"time"
)

// InitLogEvent describes one instance initialization.
type InitLogEvent struct {
	UID      uint64
	Name     string
	Path     string
	Mounted  bool
	Duration time.Duration
	Err      error
}

// ResolveLogEvent describes one Resolve step for a single definition.
type ResolveLogEvent struct {
	Definition string
	CID        int
	Outcome    ResolveOutcome
	Modified   []string
	Duration   time.Duration
}

// Logger records initializer and resolver events.
type Logger interface {
	LogInit(InitLogEvent)
	LogResolve(ResolveLogEvent)
}

// LoggerFuncs adapts functions to Logger. Nil fields are skipped.
type LoggerFuncs struct {
	Init    func(InitLogEvent)
	Resolve func(ResolveLogEvent)
}

// LogInit implements Logger.
func (f LoggerFuncs) LogInit(event InitLogEvent) {
	if f.Init != nil {
		f.Init(event)
	}
}

// LogResolve implements Logger.
func (f LoggerFuncs) LogResolve(event ResolveLogEvent) {
	if f.Resolve != nil {
		f.Resolve(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogInit(InitLogEvent)       {}
func (noopLogger) LogResolve(ResolveLogEvent) {}

// SlogLogger writes events to a slog.Logger. Init events log at info, or
// error when they failed; resolve events log at debug.
func SlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) LogInit(event InitLogEvent) {
	attrs := []slog.Attr{
		slog.Uint64("uid", event.UID),
		slog.String("component", event.Name),
		slog.String("path", event.Path),
		slog.Bool("mounted", event.Mounted),
		slog.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
		l.logger.LogAttrs(context.Background(), slog.LevelError, "component init failed", attrs...)
		return
	}
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "component initialized", attrs...)
}

func (l slogLogger) LogResolve(event ResolveLogEvent) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, "options resolved",
		slog.String("definition", event.Definition),
		slog.Int("cid", event.CID),
		slog.String("outcome", string(event.Outcome)),
		slog.Any("modified", event.Modified),
		slog.Duration("duration", event.Duration),
	)
}
