package collaborators

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentClient_CheckEnrollment(t *testing.T) {
	t.Run("sends query and service token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/enrollments/check", r.URL.Path)
			assert.Equal(t, "u1", r.URL.Query().Get("userId"))
			assert.Equal(t, "c1", r.URL.Query().Get("courseId"))
			assert.Equal(t, "l1", r.URL.Query().Get("lessonId"))
			assert.Equal(t, "svc-token", r.Header.Get(ServiceTokenHeader))
			_, _ = w.Write([]byte(`{"isEnrolled":true,"enrollmentType":"full_course","hasAccessToRequestedLesson":true}`))
		}))
		defer srv.Close()

		c := NewEnrollmentClient(Options{BaseURL: srv.URL + "/api/", ServiceToken: "svc-token", Timeout: time.Second}, nil)
		status, err := c.CheckEnrollment(context.Background(), "u1", "c1", "l1")
		require.NoError(t, err)
		assert.True(t, status.IsEnrolled)
		assert.Equal(t, "full_course", status.EnrollmentType)
		assert.True(t, status.HasAccessToRequestedLesson)
	})

	t.Run("accepts a data envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.Query().Get("lessonId"))
			_, _ = w.Write([]byte(`{"success":true,"data":{"isEnrolled":false}}`))
		}))
		defer srv.Close()

		c := NewEnrollmentClient(Options{BaseURL: srv.URL, Timeout: time.Second}, nil)
		status, err := c.CheckEnrollment(context.Background(), "u1", "c1", "")
		require.NoError(t, err)
		assert.False(t, status.IsEnrolled)
	})

	t.Run("times out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		c := NewEnrollmentClient(Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, nil)
		_, err := c.CheckEnrollment(context.Background(), "u1", "c1", "")
		assert.Error(t, err)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"isEnrolled":true,"enrollmentType":"single_lesson"}`))
		}))
		defer srv.Close()

		c := NewEnrollmentClient(Options{BaseURL: srv.URL, Timeout: time.Second, MaxRetries: 2, RetryDelay: time.Millisecond}, nil)
		status, err := c.CheckEnrollment(context.Background(), "u1", "c1", "")
		require.NoError(t, err)
		assert.True(t, status.IsEnrolled)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewEnrollmentClient(Options{BaseURL: srv.URL, Timeout: time.Second, MaxRetries: 3, RetryDelay: time.Millisecond}, nil)
		_, err := c.CheckEnrollment(context.Background(), "u1", "c1", "")
		var serr *StatusError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, http.StatusUnauthorized, serr.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestCourseCatalogClient_Owners(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/courses/c1":
			_, _ = w.Write([]byte(`{"data":{"id":"c1","instructorId":"inst-1"}}`))
		case "/courses/c2":
			_, _ = w.Write([]byte(`{"id":"c2","instructor":{"_id":"inst-2","name":"Ada"}}`))
		case "/lessons/l1":
			_, _ = w.Write([]byte(`{"id":"l1","instructor":"inst-3"}`))
		case "/lessons/l1/course":
			_, _ = w.Write([]byte(`{"id":"c9","instructor":{"id":"inst-4"}}`))
		case "/lessons/l2":
			_, _ = w.Write([]byte(`{"id":"l2"}`))
		case "/courses/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewCourseCatalogClient(Options{BaseURL: srv.URL, Timeout: time.Second}, nil)
	ctx := context.Background()

	owner, err := c.CourseOwner(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "inst-1", owner)

	owner, err = c.CourseOwner(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "inst-2", owner)

	owner, err = c.LessonOwner(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "inst-3", owner)

	owner, err = c.LessonCourseOwner(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "inst-4", owner)

	owner, err = c.LessonOwner(ctx, "l2")
	require.NoError(t, err)
	assert.Empty(t, owner)

	owner, err = c.CourseOwner(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, owner)

	_, err = c.CourseOwner(ctx, "boom")
	assert.Error(t, err)
}
