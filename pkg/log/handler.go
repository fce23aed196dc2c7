package log

import (
	"context"
	"log/slog"

	crdb "github.com/cockroachdb/errors"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// ErrFmtHandler decorates records carrying an ErrAttr with the error's
// category and its cockroachdb stack trace.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps a slog handler with ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := recordError(r); err != nil {
		if kind := errorKind(err); kind != "" {
			r.AddAttrs(slog.String(ErrorTypeKey, kind))
		}
		if st := extractStacktrace(err); st != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, st))
		}
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

// recordError returns the first error stored under ErrAttrKey, if any.
func recordError(r slog.Record) error {
	var found error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		found, _ = attr.Value.Any().(error)
		return false
	})
	return found
}

// errorKind maps err onto the pipeline's error categories. Unknown errors
// yield "".
func errorKind(err error) string {
	var (
		notFound  *errors.NotFoundError
		parse     *errors.ParseError
		valid     *errors.ValidationError
		dim       *errors.DimensionError
		notFitted *errors.NotFittedError
		numerical *errors.NumericalInstabilityError
		panicked  *errors.PanicError
		model     *errors.ModelError
	)
	switch {
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &parse):
		return "parse"
	case errors.As(err, &valid):
		return "validation"
	case errors.As(err, &dim):
		return "dimension"
	case errors.As(err, &notFitted):
		return "not_fitted"
	case errors.As(err, &numerical):
		return "numerical_instability"
	case errors.As(err, &panicked):
		return "panic"
	case errors.As(err, &model):
		return "model"
	}
	return ""
}

func extractStacktrace(err error) string {
	if details := crdb.GetSafeDetails(err).SafeDetails; len(details) > 0 {
		return details[0]
	}
	return ""
}
