package collaborators

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"edupay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// CourseCatalogClient resolves content owners from the course service.
// A missing resource resolves to an empty owner rather than an error.
type CourseCatalogClient struct {
	http *serviceClient
}

var _ interfaces.ICourseCatalog = (*CourseCatalogClient)(nil)

func NewCourseCatalogClient(opts Options, logger *zap.Logger) *CourseCatalogClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseCatalogClient{http: newServiceClient(opts, logger.Named("course.client"))}
}

func (c *CourseCatalogClient) CourseOwner(ctx context.Context, courseID string) (string, error) {
	return c.owner(ctx, "/courses/"+url.PathEscape(courseID))
}

func (c *CourseCatalogClient) LessonOwner(ctx context.Context, lessonID string) (string, error) {
	return c.owner(ctx, "/lessons/"+url.PathEscape(lessonID))
}

func (c *CourseCatalogClient) LessonCourseOwner(ctx context.Context, lessonID string) (string, error) {
	return c.owner(ctx, "/lessons/"+url.PathEscape(lessonID)+"/course")
}

func (c *CourseCatalogClient) owner(ctx context.Context, path string) (string, error) {
	var raw json.RawMessage
	if err := c.http.getJSON(ctx, path, nil, &raw); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return ownerFrom(unwrapData(raw)), nil
}

type ownerDocument struct {
	InstructorID string          `json:"instructorId"`
	Instructor   json.RawMessage `json:"instructor"`
}

// ownerFrom reads instructorId, or instructor as either an id string or an
// object carrying id/_id.
func ownerFrom(raw json.RawMessage) string {
	var doc ownerDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	if id := strings.TrimSpace(doc.InstructorID); id != "" {
		return id
	}
	if len(doc.Instructor) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(doc.Instructor, &asString); err == nil {
		return strings.TrimSpace(asString)
	}
	var asObject struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(doc.Instructor, &asObject); err == nil {
		if asObject.ID != "" {
			return asObject.ID
		}
		return asObject.MongoID
	}
	return ""
}
