package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_interfaces "edupay/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestInstructorResolver_ResolveOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("course owner wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockICourseCatalog(ctrl)
		r := NewInstructorResolver(catalog, nil, time.Minute, nil)

		catalog.EXPECT().CourseOwner(gomock.Any(), "c1").Return("inst-1", nil)

		if got := r.ResolveOwner(ctx, "c1", "l1"); got != "inst-1" {
			t.Fatalf("expected inst-1, got %q", got)
		}
	})

	t.Run("falls through lesson lookups in order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockICourseCatalog(ctrl)
		r := NewInstructorResolver(catalog, nil, time.Minute, nil)

		gomock.InOrder(
			catalog.EXPECT().CourseOwner(gomock.Any(), "c1").Return("", errors.New("404")),
			catalog.EXPECT().LessonOwner(gomock.Any(), "l1").Return("", nil),
			catalog.EXPECT().LessonCourseOwner(gomock.Any(), "l1").Return("inst-2", nil),
		)

		if got := r.ResolveOwner(ctx, "c1", "l1"); got != "inst-2" {
			t.Fatalf("expected inst-2, got %q", got)
		}
	})

	t.Run("every lookup fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockICourseCatalog(ctrl)
		r := NewInstructorResolver(catalog, nil, time.Minute, nil)

		catalog.EXPECT().LessonOwner(gomock.Any(), "l1").Return("", errors.New("down"))
		catalog.EXPECT().LessonCourseOwner(gomock.Any(), "l1").Return("", errors.New("down"))

		if got := r.ResolveOwner(ctx, "", "l1"); got != "" {
			t.Fatalf("expected empty owner, got %q", got)
		}
	})

	t.Run("cache hit skips the catalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockICourseCatalog(ctrl)
		cache := mock_interfaces.NewMockIOwnerCache(ctrl)
		r := NewInstructorResolver(catalog, cache, time.Minute, nil)

		cache.EXPECT().GetOwner(gomock.Any(), "owner:course:c1").Return("inst-9", true, nil)

		if got := r.ResolveOwner(ctx, "c1", ""); got != "inst-9" {
			t.Fatalf("expected inst-9, got %q", got)
		}
	})

	t.Run("cache failures are ignored and resolved owners are stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockICourseCatalog(ctrl)
		cache := mock_interfaces.NewMockIOwnerCache(ctrl)
		r := NewInstructorResolver(catalog, cache, 10*time.Minute, nil)

		cache.EXPECT().GetOwner(gomock.Any(), "owner:course:c1").Return("", false, errors.New("redis down"))
		catalog.EXPECT().CourseOwner(gomock.Any(), "c1").Return("inst-1", nil)
		cache.EXPECT().SetOwner(gomock.Any(), "owner:course:c1", "inst-1", 10*time.Minute).Return(errors.New("redis down"))

		if got := r.ResolveOwner(ctx, "c1", ""); got != "inst-1" {
			t.Fatalf("expected inst-1, got %q", got)
		}
	})
}
