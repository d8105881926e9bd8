package ai

import (
	"context"
	"net/http"
	"testing"

	appcfg "github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedBackend struct {
	results map[string]error
	texts   map[string]string
	calls   []string
}

func (b *scriptedBackend) Name() string      { return "Fake" }
func (b *scriptedBackend) Configured() bool { return true }

func (b *scriptedBackend) Generate(_ context.Context, model appcfg.ModelCandidate, _ string, _ Params) (string, error) {
	b.calls = append(b.calls, model.Name)
	if err := b.results[model.Name]; err != nil {
		return "", err
	}
	return b.texts[model.Name], nil
}

var twoModels = []appcfg.ModelCandidate{
	{Name: "primary", APIVersion: "v1beta"},
	{Name: "secondary", APIVersion: "v1"},
}

func TestInvokerFallsBackOnceOnNotFound(t *testing.T) {
	b := &scriptedBackend{
		results: map[string]error{"primary": apierr.Classify(http.StatusNotFound, "model not found")},
		texts:   map[string]string{"secondary": "from fallback"},
	}
	text, attempts, err := NewInvoker(b, twoModels, nil).Invoke(context.Background(), "test", "in", WriterParams)
	require.NoError(t, err)
	assert.Equal(t, "from fallback", text)
	assert.Equal(t, []string{"primary", "secondary"}, b.calls)
	require.Len(t, attempts, 2)
	assert.Equal(t, OutcomeNotFound, attempts[0].Outcome)
	assert.Equal(t, OutcomeSuccess, attempts[1].Outcome)
}

func TestInvokerStopsOnOtherErrors(t *testing.T) {
	b := &scriptedBackend{
		results: map[string]error{"primary": apierr.Classify(http.StatusTooManyRequests, "quota")},
	}
	_, attempts, err := NewInvoker(b, twoModels, nil).Invoke(context.Background(), "test", "in", WriterParams)
	require.Error(t, err)
	assert.Equal(t, []string{"primary"}, b.calls)
	require.Len(t, attempts, 1)
	assert.Equal(t, OutcomeError, attempts[0].Outcome)
	assert.Equal(t, http.StatusTooManyRequests, apierr.From(err).Status)
}

func TestInvokerReturnsFallbackFailure(t *testing.T) {
	b := &scriptedBackend{
		results: map[string]error{
			"primary":   apierr.Classify(http.StatusNotFound, "model not found"),
			"secondary": apierr.Classify(http.StatusServiceUnavailable, "overloaded"),
		},
	}
	_, _, err := NewInvoker(b, twoModels, nil).Invoke(context.Background(), "test", "in", WriterParams)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apierr.From(err).Status)
	assert.Equal(t, []string{"primary", "secondary"}, b.calls)
}

func TestInvokerExhaustsList(t *testing.T) {
	notFound := apierr.Classify(http.StatusNotFound, "gone")
	b := &scriptedBackend{
		results: map[string]error{"primary": notFound, "secondary": notFound},
	}
	_, attempts, err := NewInvoker(b, twoModels, nil).Invoke(context.Background(), "test", "in", WriterParams)
	require.Error(t, err)
	assert.Len(t, attempts, 2)
	assert.Equal(t, http.StatusNotFound, apierr.From(err).Status)
}

func TestInvokerWithoutModels(t *testing.T) {
	_, _, err := NewInvoker(&scriptedBackend{}, nil, nil).Invoke(context.Background(), "test", "in", WriterParams)
	assert.True(t, apierr.IsKind(err, apierr.KindConfiguration))
}
