package assignments

import (
	"sort"
	"strings"
	"sync"

	"github.com/coursedeck-app/coursedeck/pkg/date"
	"github.com/coursedeck-app/coursedeck/pkg/logger"
	"github.com/pkg/errors"
)

// ErrNameRequired is returned when an assignment without a name is committed
var ErrNameRequired = errors.New("assignment name must not be empty")

// ErrNotFound is returned when an assignment id is not in the collection
var ErrNotFound = errors.New("assignment does not exist")

// ErrNoEditInProgress is returned when CommitEdit is called without BeginEdit
var ErrNoEditInProgress = errors.New("no edit in progress")

// Controller owns the live in-memory assignment collection the UI renders
// from. All mutations go through the store synchronously; the next free id is
// recomputed from the stored collection on every load. The mutex serializes
// access from request handlers and the startup sync goroutine.
type Controller struct {
	Store  StoreInterface
	Logger logger.Interface

	mutex       sync.Mutex
	assignments []Assignment
	current     Assignment
	editing     bool
	nextID      int
}

// Load reads the stored collection, sorted by id ascending. On the very first
// run with an empty store it seeds the fixed sample dataset and writes the
// initialization marker. An empty store on a later run stays empty.
func (c *Controller) Load() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stored := c.Store.LoadAll()

	if len(stored) == 0 && c.Store.IsFirstRun() {
		stored = SampleAssignments()

		err := c.Store.SaveAll(stored)
		if err != nil {
			c.Logger.Error("Could not persist sample assignments", err)
		}

		err = c.Store.MarkInitialized()
		if err != nil {
			c.Logger.Error("Could not mark storage as initialized", err)
		}
	}

	sort.Slice(stored, func(i, j int) bool {
		return stored[i].ID < stored[j].ID
	})

	c.assignments = stored

	c.nextID = 1
	for _, assignment := range c.assignments {
		if assignment.ID >= c.nextID {
			c.nextID = assignment.ID + 1
		}
	}

	c.clearEdit()
}

// Assignments returns a copy of the live collection
func (c *Controller) Assignments() []Assignment {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.snapshot()
}

func (c *Controller) snapshot() []Assignment {
	assignments := make([]Assignment, len(c.assignments))
	copy(assignments, c.assignments)
	return assignments
}

// NextID returns the id the next added assignment will receive
func (c *Controller) NextID() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.nextID
}

// Add appends a new assignment with the next free id and persists it
func (c *Controller) Add(assignment Assignment) (Assignment, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if strings.TrimSpace(assignment.Name) == "" {
		return Assignment{}, ErrNameRequired
	}

	assignment.ID = c.nextID
	c.nextID++

	c.assignments = append(c.assignments, assignment)

	err := c.Store.SaveOne(assignment)
	if err != nil {
		c.Logger.Error("Could not persist added assignment", err)
	}

	return assignment, nil
}

// Update fully overwrites the stored assignment with the same id
func (c *Controller) Update(assignment Assignment) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.update(assignment)
}

func (c *Controller) update(assignment Assignment) error {
	if strings.TrimSpace(assignment.Name) == "" {
		return ErrNameRequired
	}

	for i, existing := range c.assignments {
		if existing.ID == assignment.ID {
			c.assignments[i] = assignment

			err := c.Store.SaveOne(assignment)
			if err != nil {
				c.Logger.Error("Could not persist updated assignment", err)
			}

			return nil
		}
	}

	return ErrNotFound
}

// Delete removes an assignment from the collection and the store. Deleting an
// unknown id is a no-op.
func (c *Controller) Delete(id int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	kept := c.assignments[:0]
	for _, existing := range c.assignments {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	c.assignments = kept

	err := c.Store.DeleteOne(id)
	if err != nil {
		c.Logger.Error("Could not delete assignment from storage", err)
	}

	if c.editing && c.current.ID == id {
		c.clearEdit()
	}
}

// Search filters the collection by name, description and lecture section
func (c *Controller) Search(text string) []Assignment {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return c.snapshot()
	}

	var matches []Assignment
	for _, assignment := range c.assignments {
		if strings.Contains(strings.ToLower(assignment.Name), needle) ||
			strings.Contains(strings.ToLower(assignment.Description), needle) ||
			strings.Contains(strings.ToLower(assignment.LectureSection), needle) {
			matches = append(matches, assignment)
		}
	}

	return matches
}

// ByDate returns the assignments due on a given calendar date
func (c *Controller) ByDate(day date.Day) []Assignment {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var matches []Assignment
	for _, assignment := range c.assignments {
		if assignment.DueDate == day {
			matches = append(matches, assignment)
		}
	}

	return matches
}

// BeginEdit clones the selected assignment into the scratch record so
// in-progress edits never touch the stored one
func (c *Controller) BeginEdit(id int) (Assignment, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, existing := range c.assignments {
		if existing.ID == id {
			c.current = existing
			c.editing = true
			return c.current, nil
		}
	}

	return Assignment{}, ErrNotFound
}

// Current returns the scratch record of the running edit session
func (c *Controller) Current() Assignment {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.current
}

// SetCurrent replaces the scratch record. Nothing is persisted until
// CommitEdit.
func (c *Controller) SetCurrent(assignment Assignment) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.editing {
		assignment.ID = c.current.ID
	}
	c.current = assignment
}

// CommitEdit persists the scratch record over the stored assignment
func (c *Controller) CommitEdit() (Assignment, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.editing {
		return Assignment{}, ErrNoEditInProgress
	}

	err := c.update(c.current)
	if err != nil {
		return Assignment{}, err
	}

	committed := c.current
	c.clearEdit()

	return committed, nil
}

// ClearEdit discards the running edit session and resets the scratch record
func (c *Controller) ClearEdit() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.clearEdit()
}

func (c *Controller) clearEdit() {
	c.editing = false
	c.current = NewDraft()
}
