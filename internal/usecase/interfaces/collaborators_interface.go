package interfaces

import (
	"context"
	"time"

	"edupay/internal/domain/entities"
)

//go:generate mockgen -source=collaborators_interface.go -destination=mocks/collaborators_mock.go -package=mock_interfaces

// IEnrollmentClient queries the course/enrollment service for existing access.
type IEnrollmentClient interface {
	CheckEnrollment(ctx context.Context, userID, courseID, lessonID string) (entities.EnrollmentStatus, error)
}

// ICourseCatalog looks up content owners on the course service.
// Each call returns "" with a nil error when the resource has no owner.
type ICourseCatalog interface {
	CourseOwner(ctx context.Context, courseID string) (string, error)
	LessonOwner(ctx context.Context, lessonID string) (string, error)
	LessonCourseOwner(ctx context.Context, lessonID string) (string, error)
}

// IOwnerCache memoises owner lookups. A miss is reported as ok=false.
type IOwnerCache interface {
	GetOwner(ctx context.Context, key string) (ownerID string, ok bool, err error)
	SetOwner(ctx context.Context, key, ownerID string, ttl time.Duration) error
}
