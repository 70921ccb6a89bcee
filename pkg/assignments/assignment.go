package assignments

import (
	"strings"
	"time"

	"github.com/coursedeck-app/coursedeck/pkg/date"
)

// Assignment is the model for an assignment
type Assignment struct {
	ID             int        `json:"id"`
	Name           string     `json:"name" validate:"required"`
	Description    string     `json:"description"`
	DueDate        date.Day   `json:"dueDate"`
	DueTime        date.Clock `json:"dueTime"`
	LectureSection string     `json:"lectureSection"`
	SubmissionURL  string     `json:"submissionUrl"`
}

// NewDraft builds an empty assignment with the default deadline time
func NewDraft() Assignment {
	return Assignment{
		DueDate: date.Today(),
		DueTime: date.EndOfDay,
	}
}

// DueDateTime combines the due date and due time into a single deadline timestamp
func (a Assignment) DueDateTime() time.Time {
	return a.DueDate.At(a.DueTime)
}

// DisplaySubmissionURL returns the submission link for rendering, assuming
// https when the stored value carries no scheme. The stored value is never
// rewritten.
func (a Assignment) DisplaySubmissionURL() string {
	if a.SubmissionURL == "" {
		return ""
	}

	if strings.Contains(a.SubmissionURL, "://") {
		return a.SubmissionURL
	}

	return "https://" + a.SubmissionURL
}

// SampleAssignments is the fixed dataset seeded on the very first run
func SampleAssignments() []Assignment {
	today := date.Today()

	return []Assignment{
		{ID: 1, Name: "Assignment 1", Description: "Complete chapter 1-3", DueDate: today.AddDays(7), DueTime: date.Clock{Hour: 17}, LectureSection: "CS 101", SubmissionURL: "https://classroom.google.com"},
		{ID: 2, Name: "Assignment 2", Description: "Write a report on algorithms", DueDate: today.AddDays(14), DueTime: date.EndOfDay, LectureSection: "CS 201"},
		{ID: 3, Name: "Assignment 3", Description: "Build a simple calculator", DueDate: today.AddDays(3), DueTime: date.Clock{Hour: 14, Minute: 30}, LectureSection: "CS 102", SubmissionURL: "https://github.com"},
		{ID: 4, Name: "Quiz Preparation", Description: "Study chapters 5-8", DueDate: today.AddDays(2), DueTime: date.Clock{Hour: 10}, LectureSection: "CS 101"},
	}
}
