package lms

import (
	"context"

	"github.com/coursedeck-app/coursedeck/pkg/communication"
)

// MockClient is an LMS client for testing
type MockClient struct {
	Base              string
	Initialized       bool
	Valid             bool
	RemoteCourses     []Course
	RemoteAssignments map[string][]RemoteAssignment
	CoursesErr        error
	AssignmentsErr    error

	CourseCalls int
}

// Initialize marks the mock as initialized
func (c *MockClient) Initialize(baseURL string, accessToken string) {
	c.Base = baseURL
	c.Initialized = true
}

// Reset marks the mock as uninitialized
func (c *MockClient) Reset() {
	c.Base = ""
	c.Initialized = false
}

// IsInitialized reports the configured state
func (c *MockClient) IsInitialized() bool {
	return c.Initialized
}

// BaseURL returns the configured base URL
func (c *MockClient) BaseURL() string {
	return c.Base
}

// ValidateConnection returns the configured validity
func (c *MockClient) ValidateConnection(ctx context.Context) bool {
	return c.Initialized && c.Valid
}

// Courses returns the configured course list
func (c *MockClient) Courses(ctx context.Context) ([]Course, error) {
	if !c.Initialized {
		return nil, communication.ErrLMSNotInitialized
	}

	c.CourseCalls++

	if c.CoursesErr != nil {
		return []Course{}, c.CoursesErr
	}

	return c.RemoteCourses, nil
}

// CourseAssignments returns the configured assignments of a course
func (c *MockClient) CourseAssignments(ctx context.Context, courseID string) ([]RemoteAssignment, error) {
	if !c.Initialized {
		return nil, communication.ErrLMSNotInitialized
	}

	if c.AssignmentsErr != nil {
		return []RemoteAssignment{}, c.AssignmentsErr
	}

	return c.RemoteAssignments[courseID], nil
}
