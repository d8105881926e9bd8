package ai

import (
	"context"
	"errors"

	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/metrics"
	"go.uber.org/zap"
)

// Params are passed to the provider unchanged.
type Params struct {
	Temperature     float64
	MaxOutputTokens int
}

var (
	WriterParams    = Params{Temperature: 0.7, MaxOutputTokens: 1000}
	TranslateParams = Params{Temperature: 0.3, MaxOutputTokens: 2000}
)

// TextBackend generates text with one named model.
type TextBackend interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, model appcfg.ModelCandidate, input string, params Params) (string, error)
}

// Outcome of a single model attempt.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeNotFound Outcome = "not-found"
	OutcomeError    Outcome = "other-error"
)

// Attempt records one call to one model.
type Attempt struct {
	Model   appcfg.ModelCandidate
	Outcome Outcome
	Err     error
}

// Invoker walks an ordered model list. A not-found answer moves on to the next
// candidate; success or any other failure ends the walk.
type Invoker struct {
	backend TextBackend
	models  []appcfg.ModelCandidate
	logger  *zap.Logger
}

func NewInvoker(backend TextBackend, models []appcfg.ModelCandidate, logger *zap.Logger) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{backend: backend, models: models, logger: logger}
}

// Invoke returns the generated text and every attempt made, in order.
func (iv *Invoker) Invoke(ctx context.Context, route, input string, params Params) (string, []Attempt, error) {
	if len(iv.models) == 0 {
		return "", nil, apierr.Configuration("No " + iv.backend.Name() + " models configured")
	}

	attempts := make([]Attempt, 0, len(iv.models))
	var lastErr error
	for i, model := range iv.models {
		text, err := iv.backend.Generate(ctx, model, input, params)
		attempt := Attempt{Model: model, Outcome: classifyOutcome(err), Err: err}
		attempts = append(attempts, attempt)
		metrics.ModelAttempts.WithLabelValues(route, model.Name, string(attempt.Outcome)).Inc()

		fields := []zap.Field{
			zap.String("route", route),
			zap.String("model", model.Name),
			zap.String("api_version", model.APIVersion),
			zap.String("outcome", string(attempt.Outcome)),
		}
		switch attempt.Outcome {
		case OutcomeSuccess:
			iv.logger.Info("model attempt", fields...)
			return text, attempts, nil
		case OutcomeNotFound:
			lastErr = err
			if i+1 < len(iv.models) {
				fields = append(fields, zap.String("fallback_to", iv.models[i+1].Name), zap.String("reason", errDetails(err)))
			}
			iv.logger.Info("model attempt", fields...)
			continue
		default:
			iv.logger.Info("model attempt", append(fields, zap.Error(err))...)
			return "", attempts, err
		}
	}
	return "", attempts, lastErr
}

func classifyOutcome(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case apierr.IsKind(err, apierr.KindNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

func errDetails(err error) string {
	var e *apierr.Error
	if errors.As(err, &e) && e.Details != "" {
		return e.Details
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
