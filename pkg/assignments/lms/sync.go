package lms

import (
	"context"
	"fmt"
	"time"

	"github.com/coursedeck-app/coursedeck/pkg/assignments"
	"github.com/coursedeck-app/coursedeck/pkg/communication"
	"github.com/coursedeck-app/coursedeck/pkg/date"
	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// missingDueDateOffset is the deadline assumed for remote assignments without
// a due date
const missingDueDateOffset = 7 * 24 * time.Hour

// Syncer merges remote LMS assignments into the local store exactly once per
// id. Courses and their assignments are fetched strictly one after another;
// nothing runs concurrently.
type Syncer struct {
	Client ClientInterface
	Logger logger.Interface
}

// SyncAll fetches every course and its assignments and persists the ones
// whose id is not stored yet. A stored id wins; the remote record is skipped
// without diffing. The returned slice holds only the newly added assignments.
// A failure partway through aborts the rest and returns what was accumulated
// so far together with the error.
func (s *Syncer) SyncAll(ctx context.Context, store assignments.StoreInterface) ([]assignments.Assignment, error) {
	synced := []assignments.Assignment{}

	if !s.Client.IsInitialized() {
		return synced, communication.ErrLMSNotInitialized
	}

	runID := uuid.New().String()
	s.Logger.Info(fmt.Sprintf("Starting assignment sync %s", runID))

	courses, err := s.Client.Courses(ctx)
	if err != nil {
		return synced, err
	}

	for _, course := range courses {
		remotes, err := s.Client.CourseAssignments(ctx, course.CourseID)
		if err != nil {
			return synced, err
		}

		for _, remote := range remotes {
			assignment := s.mapRemote(course, remote)

			// The whole document is reloaded per record so ids persisted
			// earlier in this run are seen too
			if containsID(store.LoadAll(), assignment.ID) {
				continue
			}

			err = store.SaveOne(assignment)
			if err != nil {
				return synced, errors.Wrapf(err, "sync %s aborted while persisting assignment %d", runID, assignment.ID)
			}

			synced = append(synced, assignment)
		}
	}

	s.Logger.Info(fmt.Sprintf("Assignment sync %s completed with %d new assignments", runID, len(synced)))

	return synced, nil
}

// mapRemote builds a local assignment from a remote dropbox folder by direct
// field mapping
func (s *Syncer) mapRemote(course Course, remote RemoteAssignment) assignments.Assignment {
	dueDate, dueTime := date.Split(time.Now().Add(missingDueDateOffset))
	if remote.DueDate != nil {
		dueDate, dueTime = date.Split(remote.DueDate.Time)
	} else {
		dueTime = date.Clock{Hour: 23, Minute: 59}
	}

	return assignments.Assignment{
		ID:             remote.ID,
		Name:           remote.Name,
		Description:    remote.Description,
		DueDate:        dueDate,
		DueTime:        dueTime,
		LectureSection: course.CourseName,
		SubmissionURL:  fmt.Sprintf("%s/d2l/lms/dropbox/user/folders/submit/%s/%d", s.Client.BaseURL(), course.CourseID, remote.ID),
	}
}

func containsID(stored []assignments.Assignment, id int) bool {
	for _, assignment := range stored {
		if assignment.ID == id {
			return true
		}
	}

	return false
}
