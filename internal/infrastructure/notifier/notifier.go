// Package notifier is the fire-and-forget notification sink. The host game
// binds these to its message center; standalone runs just log them.
package notifier

import (
	"context"
	"log/slog"

	"used_market/internal/domain/value"
	"used_market/pkg/contextx"
	"used_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Log struct{}

func NewLog() Log {
	return Log{}
}

func (Log) Notify(ctx context.Context, accountID int64, kind value.NotificationKind, message string) {
	logger(ctx).Info("notification",
		slog.Int64(logx.FieldAccountID, accountID),
		slog.String("kind", kind.String()),
		slog.String("message", message),
	)
}

// Recorder collects notifications for assertions in tests.
type Recorder struct {
	Entries []Entry
}

type Entry struct {
	AccountID int64
	Kind      value.NotificationKind
	Message   string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, accountID int64, kind value.NotificationKind, message string) {
	r.Entries = append(r.Entries, Entry{AccountID: accountID, Kind: kind, Message: message})
}

// ByKind returns recorded entries of one kind.
func (r *Recorder) ByKind(kind value.NotificationKind) []Entry {
	result := make([]Entry, 0)

	for _, e := range r.Entries {
		if e.Kind == kind {
			result = append(result, e)
		}
	}

	return result
}
