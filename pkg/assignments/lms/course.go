package lms

import (
	"time"

	"github.com/pkg/errors"
)

// Course is a remote course enrollment
type Course struct {
	CourseID   string `json:"courseId"`
	CourseName string `json:"courseName"`
	CourseCode string `json:"courseCode"`
}

// RemoteAssignment is a remote dropbox folder, the LMS term for an assignment
// submission endpoint
type RemoteAssignment struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	DueDate     *RemoteTime `json:"dueDate"`
}

// RemoteTime is a timestamp as the LMS serializes it, with or without a zone
// offset
type RemoteTime struct {
	time.Time
}

var remoteTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// UnmarshalJSON parses the remote timestamp formats
func (t *RemoteTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("remote timestamp is not a json string: %s", s)
	}
	s = s[1 : len(s)-1]

	var lastErr error
	for _, layout := range remoteTimeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}

	return errors.Wrap(lastErr, "could not parse remote timestamp")
}

// enrollmentResponse is the wrapper of the enrollment list endpoint
type enrollmentResponse struct {
	Items []Course `json:"items"`
}

// dropboxResponse is the wrapper of the dropbox folder list endpoint
type dropboxResponse struct {
	Objects []RemoteAssignment `json:"objects"`
}
