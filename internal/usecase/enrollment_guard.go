package usecase

import (
	"context"
	"fmt"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const enrollmentTypeFullCourse = "full_course"

// IEnrollmentGuard decides whether a user already holds access to a purchase target.
//
// The check fails open: when the enrollment service cannot answer, the user
// is treated as not entitled and the purchase proceeds.
type IEnrollmentGuard interface {
	CheckEntitlement(ctx context.Context, userID, courseID, lessonID string) entities.Entitlement
}

type EnrollmentGuard struct {
	client interfaces.IEnrollmentClient
	logger *zap.Logger
}

var _ IEnrollmentGuard = (*EnrollmentGuard)(nil)

func NewEnrollmentGuard(client interfaces.IEnrollmentClient, logger *zap.Logger) *EnrollmentGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentGuard{client: client, logger: logger.Named("enrollment_guard")}
}

func (g *EnrollmentGuard) CheckEntitlement(ctx context.Context, userID, courseID, lessonID string) entities.Entitlement {
	if g.client == nil {
		return entities.Entitlement{}
	}

	status, err := g.client.CheckEnrollment(ctx, userID, courseID, lessonID)
	if err != nil {
		g.logger.Warn("enrollment check failed, allowing purchase",
			zap.String("user_id", userID),
			zap.String("course_id", courseID),
			zap.String("lesson_id", lessonID),
			zap.Error(err),
		)
		return entities.Entitlement{}
	}

	// full-course access covers the course and every lesson in it
	if status.IsEnrolled && status.EnrollmentType == enrollmentTypeFullCourse {
		return entities.Entitlement{
			Entitled:    true,
			Scope:       entities.EntitlementScopeFullCourse,
			BlockReason: fmt.Sprintf("user is enrolled in the full course %s", courseID),
		}
	}

	if lessonID != "" && status.HasAccessToRequestedLesson {
		return entities.Entitlement{
			Entitled:    true,
			Scope:       entities.EntitlementScopeSingleLesson,
			BlockReason: fmt.Sprintf("user already has access to lesson %s", lessonID),
		}
	}

	return entities.Entitlement{}
}
