package service

import (
	"context"
	"time"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/metrics"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/apperr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Source tells which store answered an operation.
type Source string

const (
	SourceReal Source = "real"
	SourceMock Source = "mock"
)

// Merge returns the weaker of two provenances: any mock answer makes the
// combined result mock.
func (s Source) Merge(o Source) Source {
	if s == SourceMock || o == SourceMock {
		return SourceMock
	}
	return SourceReal
}

type Result[T any] struct {
	Data   T
	Source Source
}

// PrimaryToggle reports whether the primary store should be attempted.
type PrimaryToggle interface {
	Enabled() bool
}

// Resolver picks the store that answers each operation. It keeps no memory of
// earlier outcomes: every call tries the primary store again when enabled.
type Resolver struct {
	primary PrimaryToggle
	log     *zap.Logger
	tracer  trace.Tracer
}

func NewResolver(primary PrimaryToggle, log *zap.Logger) *Resolver {
	return &Resolver{
		primary: primary,
		log:     log,
		tracer:  otel.Tracer("pulse/resolver"),
	}
}

func (r *Resolver) PrimaryEnabled() bool {
	return r.primary != nil && r.primary.Enabled()
}

// resolve runs primary when the primary store is enabled and falls back to
// fallback only when primary fails with a connectivity error. Any other error
// is returned as is.
func resolve[T any](
	ctx context.Context,
	r *Resolver,
	entity model.Kind,
	op string,
	primary func(context.Context) (T, error),
	fallback func() (T, error),
) (Result[T], error) {
	ctx, span := r.tracer.Start(ctx, "resolve "+string(entity)+"."+op,
		trace.WithAttributes(
			attribute.String("pulse.entity", string(entity)),
			attribute.String("pulse.op", op),
		))
	defer span.End()

	finish := func(v T, src Source, err error) (Result[T], error) {
		span.SetAttributes(attribute.String("pulse.source", string(src)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Result[T]{Source: src}, err
		}
		metrics.RecordResolution(string(entity), op, string(src))
		return Result[T]{Data: v, Source: src}, nil
	}

	if !r.PrimaryEnabled() {
		v, err := fallback()
		return finish(v, SourceMock, err)
	}

	start := time.Now()
	v, err := primary(ctx)
	if err == nil {
		metrics.RecordPrimaryLatency(string(entity), op, "ok", time.Since(start))
		return finish(v, SourceReal, nil)
	}
	if !apperr.Is(err, apperr.KindConnectivity) {
		metrics.RecordPrimaryLatency(string(entity), op, apperr.KindOf(err).String(), time.Since(start))
		return finish(v, SourceReal, err)
	}

	metrics.RecordPrimaryLatency(string(entity), op, "unreachable", time.Since(start))
	metrics.RecordFallback(string(entity), op)
	r.log.Warn("primary store unreachable, answering from mock store",
		zap.String("entity", string(entity)),
		zap.String("op", op),
		zap.Error(err))

	v, err = fallback()
	return finish(v, SourceMock, err)
}

// exec is resolve for operations without a payload.
func exec(
	ctx context.Context,
	r *Resolver,
	entity model.Kind,
	op string,
	primary func(context.Context) error,
	fallback func() error,
) (Source, error) {
	res, err := resolve(ctx, r, entity, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, primary(ctx) },
		func() (struct{}, error) { return struct{}{}, fallback() },
	)
	return res.Source, err
}
