package postgresdb

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type queryStartKey struct{}

// LoggingQueryTracer logs each statement at debug level and any statement
// slower than the threshold at warn level.
// https://github.com/jackc/pgx/issues/1061#issuecomment-1186250809
type LoggingQueryTracer struct {
	logger *slog.Logger
	slow   time.Duration
}

// TracerOption configures a LoggingQueryTracer.
type TracerOption func(*LoggingQueryTracer)

// WithSlowQuery sets the duration above which a query is logged as slow.
// Zero disables slow query warnings.
func WithSlowQuery(d time.Duration) TracerOption {
	return func(t *LoggingQueryTracer) {
		t.slow = d
	}
}

func NewLoggingQueryTracer(logger *slog.Logger, opts ...TracerOption) *LoggingQueryTracer {
	t := &LoggingQueryTracer{logger: logger}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var (
	replaceSpacesAroundParens = regexp.MustCompile(`\s*([()])\s*`)
	replaceSpaces             = regexp.MustCompile(`\s+`)
)

// prettyPrintSQL collapses a statement onto one line.
func prettyPrintSQL(sql string) string {
	pretty := replaceSpaces.ReplaceAllString(sql, " ")
	pretty = replaceSpacesAroundParens.ReplaceAllString(pretty, "$1")
	return strings.TrimSpace(pretty)
}

// TraceQueryStart logs the statement and the number of arguments. Argument
// values are not logged since they include password and token hashes.
func (l *LoggingQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	l.logger.DebugContext(ctx, "query start",
		slog.String("sql", prettyPrintSQL(data.SQL)),
		slog.Int("args", len(data.Args)),
	)
	return context.WithValue(ctx, queryStartKey{}, time.Now())
}

func (l *LoggingQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	var took time.Duration
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		took = time.Since(start)
	}

	if data.Err != nil {
		l.logger.ErrorContext(ctx, "query end",
			slog.String("error", data.Err.Error()),
			slog.String("command_tag", data.CommandTag.String()),
			slog.Duration("took", took),
		)
		return
	}

	if l.slow > 0 && took > l.slow {
		l.logger.WarnContext(ctx, "slow query",
			slog.String("command_tag", data.CommandTag.String()),
			slog.Duration("took", took),
		)
		return
	}

	l.logger.DebugContext(ctx, "query end",
		slog.String("command_tag", data.CommandTag.String()),
		slog.Duration("took", took),
	)
}
