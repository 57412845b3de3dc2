package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		enabled      bool
		primaryErr   error
		wantSource   Source
		wantErrKind  *apperr.Kind
		wantPrimary  bool
		wantFallback bool
	}{
		{
			name:         "primary disabled goes straight to mock",
			enabled:      false,
			wantSource:   SourceMock,
			wantFallback: true,
		},
		{
			name:        "primary answers",
			enabled:     true,
			wantSource:  SourceReal,
			wantPrimary: true,
		},
		{
			name:         "connectivity failure falls back",
			enabled:      true,
			primaryErr:   errDown,
			wantSource:   SourceMock,
			wantPrimary:  true,
			wantFallback: true,
		},
		{
			name:        "validation failure is returned as is",
			enabled:     true,
			primaryErr:  apperr.Validation("bad input"),
			wantSource:  SourceReal,
			wantErrKind: ptr(apperr.KindValidation),
			wantPrimary: true,
		},
		{
			name:        "unclassified failure is not recovered",
			enabled:     true,
			primaryErr:  errors.New("syntax error at or near"),
			wantSource:  SourceReal,
			wantErrKind: ptr(apperr.KindInternal),
			wantPrimary: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(toggle(tt.enabled), zap.NewNop())
			var calledPrimary, calledFallback bool

			res, err := resolve(ctx, r, model.KindProject, "get",
				func(context.Context) (string, error) {
					calledPrimary = true
					return "real", tt.primaryErr
				},
				func() (string, error) {
					calledFallback = true
					return "mock", nil
				})

			assert.Equal(t, tt.wantPrimary, calledPrimary)
			assert.Equal(t, tt.wantFallback, calledFallback)
			assert.Equal(t, tt.wantSource, res.Source)
			if tt.wantErrKind != nil {
				assert.Error(t, err)
				assert.Equal(t, *tt.wantErrKind, apperr.KindOf(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, string(tt.wantSource), res.Data)
		})
	}
}

func TestResolve_NoHealthMemory(t *testing.T) {
	r := NewResolver(toggle(true), zap.NewNop())
	calls := 0
	primary := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errDown
		}
		return 1, nil
	}

	first, err := resolve(context.Background(), r, model.KindTask, "list", primary, func() (int, error) { return 0, nil })
	assert.NoError(t, err)
	assert.Equal(t, SourceMock, first.Source)

	second, err := resolve(context.Background(), r, model.KindTask, "list", primary, func() (int, error) { return 0, nil })
	assert.NoError(t, err)
	assert.Equal(t, SourceReal, second.Source, "a recovered primary is used on the very next call")
	assert.Equal(t, 2, calls)
}

func TestSource_Merge(t *testing.T) {
	assert.Equal(t, SourceReal, SourceReal.Merge(SourceReal))
	assert.Equal(t, SourceMock, SourceReal.Merge(SourceMock))
	assert.Equal(t, SourceMock, SourceMock.Merge(SourceReal))
}
