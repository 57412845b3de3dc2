package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/metrics"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/queue"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/model"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/pkg/utils/tokens"
	"go.uber.org/zap"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ActivityService keeps the audit trail of project and task mutations. The
// trail lives in the mock store only and writing it never fails the caller.
type ActivityService interface {
	Record(ctx context.Context, verb model.Verb, kind model.Kind, entityID uint, summary string)
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) []model.Activity
}

type activityService struct {
	store *mockstore.Store
	pub   queue.Publisher
	log   *zap.Logger
}

// NewActivityService builds the audit trail. pub may be nil when no broker is
// configured.
func NewActivityService(store *mockstore.Store, pub queue.Publisher, log *zap.Logger) ActivityService {
	return &activityService{store: store, pub: pub, log: log}
}

func (s *activityService) Record(ctx context.Context, verb model.Verb, kind model.Kind, entityID uint, summary string) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.RecordSideEffectFailure("activity")
			s.log.Warn("activity log failed", zap.Any("panic", rec))
		}
	}()

	actor := actorOf(ctx)
	a := s.store.Activities.Create(model.Activity{
		ActorID:    actor.UserID,
		ActorName:  actor.Name,
		Verb:       verb,
		EntityKind: kind,
		EntityID:   entityID,
		Summary:    summary,
	})

	if s.pub == nil {
		return
	}
	key := fmt.Sprintf("activity.%s.%s", kind, verb)
	if err := s.pub.PublishJSON(ctx, key, a); err != nil {
		metrics.RecordSideEffectFailure("activity_publish")
		s.log.Warn("activity event not published", zap.String("routing_key", key), zap.Error(err))
	}
}

func (s *activityService) Recent(_ context.Context, limit int) []model.Activity {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	limit = min(limit, maxActivityLimit)

	all := s.store.Activities.List(nil)
	slices.Reverse(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// actorOf names the caller for the audit trail, "system" when unauthenticated.
func actorOf(ctx context.Context) tokens.Identity {
	if id, ok := tokens.FromContext(ctx); ok {
		return id
	}
	return tokens.Identity{Name: "system"}
}
