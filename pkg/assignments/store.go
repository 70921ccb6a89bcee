package assignments

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"github.com/pkg/errors"
)

const assignmentsFileName = "assignments.json"
const initializedFileName = ".initialized"

// StoreInterface is an interface for a *FileStore
type StoreInterface interface {
	LoadAll() []Assignment
	SaveAll(assignments []Assignment) error
	SaveOne(assignment Assignment) error
	DeleteOne(id int) error
	IsFirstRun() bool
	MarkInitialized() error
}

// StoreChange describes a single mutation of the stored collection. A nil
// Assignment means the whole document was replaced.
type StoreChange struct {
	Assignment *Assignment
	Deleted    bool
}

// StoreObserver is an Observer
type StoreObserver interface {
	OnNotify(change *StoreChange)
}

// StoreObservable is an Observable
type StoreObservable interface {
	Subscribe(o StoreObserver)
	Unsubscribe(o StoreObserver)
	Publish(change *StoreChange)
}

// FileStore persists the full assignment collection as a single JSON document.
// Every mutation rewrites the whole document; there is no partial update and
// no cross-process locking.
type FileStore struct {
	Dir    string
	Logger logger.Interface

	mutex       sync.Mutex
	subscribers []StoreObserver
}

func (s *FileStore) documentPath() string {
	return filepath.Join(s.Dir, assignmentsFileName)
}

func (s *FileStore) sentinelPath() string {
	return filepath.Join(s.Dir, initializedFileName)
}

// LoadAll reads the whole assignment document. A missing, empty or corrupt
// document counts as an empty collection and never fails the caller.
func (s *FileStore) LoadAll() []Assignment {
	binary, err := ioutil.ReadFile(s.documentPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.Logger.Warning("Could not read assignment document", err)
		}
		return []Assignment{}
	}

	if strings.TrimSpace(string(binary)) == "" {
		return []Assignment{}
	}

	var assignments []Assignment
	err = json.Unmarshal(binary, &assignments)
	if err != nil {
		s.Logger.Warning("Assignment document is corrupt, treating it as empty", err)
		return []Assignment{}
	}

	if assignments == nil {
		return []Assignment{}
	}

	return assignments
}

// SaveAll overwrites the whole assignment document
func (s *FileStore) SaveAll(assignments []Assignment) error {
	err := s.writeDocument(assignments)
	if err != nil {
		return err
	}

	s.Publish(&StoreChange{})

	return nil
}

// SaveOne replaces the stored assignment with a matching id, or appends it,
// then rewrites the whole document
func (s *FileStore) SaveOne(assignment Assignment) error {
	assignments := s.LoadAll()

	replaced := false
	for i, existing := range assignments {
		if existing.ID == assignment.ID {
			assignments[i] = assignment
			replaced = true
			break
		}
	}

	if !replaced {
		assignments = append(assignments, assignment)
	}

	err := s.writeDocument(assignments)
	if err != nil {
		return err
	}

	s.Publish(&StoreChange{Assignment: &assignment})

	return nil
}

// DeleteOne removes the assignment with the given id and rewrites the whole
// document. Deleting an id that is not stored is a no-op and publishes
// nothing.
func (s *FileStore) DeleteOne(id int) error {
	assignments := s.LoadAll()

	kept := assignments[:0]
	for _, existing := range assignments {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}

	if len(kept) == len(assignments) {
		return nil
	}

	err := s.writeDocument(kept)
	if err != nil {
		return err
	}

	s.Publish(&StoreChange{Assignment: &Assignment{ID: id}, Deleted: true})

	return nil
}

// IsFirstRun reports whether the sentinel marker has not been written yet
func (s *FileStore) IsFirstRun() bool {
	_, err := os.Stat(s.sentinelPath())
	return os.IsNotExist(err)
}

// MarkInitialized writes the zero-byte sentinel marker
func (s *FileStore) MarkInitialized() error {
	err := os.MkdirAll(s.Dir, 0o755)
	if err != nil {
		return errors.Wrap(err, "could not create data directory")
	}

	err = ioutil.WriteFile(s.sentinelPath(), []byte{}, 0o644)
	if err != nil {
		return errors.Wrap(err, "could not write initialization marker")
	}

	return nil
}

func (s *FileStore) writeDocument(assignments []Assignment) error {
	err := os.MkdirAll(s.Dir, 0o755)
	if err != nil {
		return errors.Wrap(err, "could not create data directory")
	}

	binary, err := json.MarshalIndent(assignments, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal assignment document")
	}

	err = ioutil.WriteFile(s.documentPath(), binary, 0o644)
	if err != nil {
		return errors.Wrap(err, "could not write assignment document")
	}

	return nil
}

// Subscribe is useful for listening to store changes
func (s *FileStore) Subscribe(o StoreObserver) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.subscribers = append(s.subscribers, o)
}

// Unsubscribe unsubscribes from a subscription
func (s *FileStore) Unsubscribe(o StoreObserver) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var index int
	for i, subscriber := range s.subscribers {
		if subscriber == o {
			index = i
			break
		}
	}

	s.subscribers = append(s.subscribers[:index], s.subscribers[index+1:]...)
}

// Publish publishes a change to all subscribers. The subscriber list is
// snapshotted under the lock so notifications never race a Subscribe.
func (s *FileStore) Publish(change *StoreChange) {
	s.mutex.Lock()
	subscribers := make([]StoreObserver, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mutex.Unlock()

	for _, subscriber := range subscribers {
		go subscriber.OnNotify(change)
	}
}
