package usecase

import (
	"context"
	"time"

	"edupay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// IInstructorResolver attributes a purchase target to the instructor that owns it.
// Resolution is best effort and never fails the caller.
type IInstructorResolver interface {
	ResolveOwner(ctx context.Context, courseID, lessonID string) string
}

type InstructorResolver struct {
	catalog  interfaces.ICourseCatalog
	cache    interfaces.IOwnerCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

var _ IInstructorResolver = (*InstructorResolver)(nil)

// NewInstructorResolver builds a resolver. cache may be nil.
func NewInstructorResolver(catalog interfaces.ICourseCatalog, cache interfaces.IOwnerCache, cacheTTL time.Duration, logger *zap.Logger) *InstructorResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorResolver{
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("instructor_resolver"),
	}
}

type ownerLookup struct {
	key    string
	id     string
	lookup func(context.Context, string) (string, error)
}

func (r *InstructorResolver) ResolveOwner(ctx context.Context, courseID, lessonID string) string {
	if r.catalog == nil {
		return ""
	}

	var lookups []ownerLookup
	if courseID != "" {
		lookups = append(lookups, ownerLookup{key: "owner:course:" + courseID, id: courseID, lookup: r.catalog.CourseOwner})
	}
	if lessonID != "" {
		lookups = append(lookups,
			ownerLookup{key: "owner:lesson:" + lessonID, id: lessonID, lookup: r.catalog.LessonOwner},
			ownerLookup{key: "owner:lesson-course:" + lessonID, id: lessonID, lookup: r.catalog.LessonCourseOwner},
		)
	}

	for _, l := range lookups {
		if owner := r.cached(ctx, l.key); owner != "" {
			return owner
		}
		owner, err := l.lookup(ctx, l.id)
		if err != nil {
			r.logger.Warn("owner lookup failed", zap.String("key", l.key), zap.Error(err))
			continue
		}
		if owner != "" {
			r.remember(ctx, l.key, owner)
			return owner
		}
	}

	r.logger.Info("no instructor resolved", zap.String("course_id", courseID), zap.String("lesson_id", lessonID))
	return ""
}

func (r *InstructorResolver) cached(ctx context.Context, key string) string {
	if r.cache == nil {
		return ""
	}
	owner, ok, err := r.cache.GetOwner(ctx, key)
	if err != nil {
		r.logger.Debug("owner cache read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return owner
}

func (r *InstructorResolver) remember(ctx context.Context, key, owner string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetOwner(ctx, key, owner, r.cacheTTL); err != nil {
		r.logger.Debug("owner cache write failed", zap.String("key", key), zap.Error(err))
	}
}
