package collaborators

import (
	"context"
	"encoding/json"
	"net/url"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// EnrollmentClient asks the course service whether a user already has access.
type EnrollmentClient struct {
	http *serviceClient
}

var _ interfaces.IEnrollmentClient = (*EnrollmentClient)(nil)

func NewEnrollmentClient(opts Options, logger *zap.Logger) *EnrollmentClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentClient{http: newServiceClient(opts, logger.Named("enrollment.client"))}
}

func (c *EnrollmentClient) CheckEnrollment(ctx context.Context, userID, courseID, lessonID string) (entities.EnrollmentStatus, error) {
	q := url.Values{}
	q.Set("userId", userID)
	if courseID != "" {
		q.Set("courseId", courseID)
	}
	if lessonID != "" {
		q.Set("lessonId", lessonID)
	}

	var raw json.RawMessage
	if err := c.http.getJSON(ctx, "/enrollments/check", q, &raw); err != nil {
		return entities.EnrollmentStatus{}, err
	}

	var status entities.EnrollmentStatus
	if err := json.Unmarshal(unwrapData(raw), &status); err != nil {
		return entities.EnrollmentStatus{}, err
	}
	return status, nil
}
