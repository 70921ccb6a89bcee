package assignments

import (
	"sync"
	"testing"

	"github.com/coursedeck-app/coursedeck/pkg/date"
	"github.com/coursedeck-app/coursedeck/pkg/logger"
)

func newTestController(store StoreInterface) *Controller {
	return &Controller{Store: store, Logger: logger.Logger{}}
}

func TestControllerLoadSeedsSampleDataOnFirstRun(t *testing.T) {
	store := &MockStore{FirstRun: true}
	controller := newTestController(store)

	controller.Load()

	loaded := controller.Assignments()
	if len(loaded) != 4 {
		t.Fatalf("Load() seeded %d assignments, want 4", len(loaded))
	}

	for i, assignment := range loaded {
		if assignment.ID != i+1 {
			t.Errorf("seeded assignment %d has id %d, want %d", i, assignment.ID, i+1)
		}
	}

	if controller.NextID() != 5 {
		t.Errorf("NextID() = %d after seeding, want 5", controller.NextID())
	}

	if !store.Initialized {
		t.Error("Load() did not write the initialization marker")
	}

	if len(store.Assignments) != 4 {
		t.Errorf("store holds %d assignments after seeding, want 4", len(store.Assignments))
	}
}

func TestControllerLoadKeepsEmptyStoreAfterFirstRun(t *testing.T) {
	// The user deleted everything; a later start must not reseed
	store := &MockStore{FirstRun: false}
	controller := newTestController(store)

	controller.Load()

	if len(controller.Assignments()) != 0 {
		t.Errorf("Load() produced %d assignments, want 0", len(controller.Assignments()))
	}

	if controller.NextID() != 1 {
		t.Errorf("NextID() = %d, want 1", controller.NextID())
	}
}

func TestControllerLoadSortsAndRecomputesNextID(t *testing.T) {
	store := &MockStore{Assignments: []Assignment{
		{ID: 9, Name: "Last"},
		{ID: 2, Name: "First"},
		{ID: 5, Name: "Middle"},
	}}
	controller := newTestController(store)

	controller.Load()

	loaded := controller.Assignments()
	for i, wantID := range []int{2, 5, 9} {
		if loaded[i].ID != wantID {
			t.Errorf("assignment at position %d has id %d, want %d", i, loaded[i].ID, wantID)
		}
	}

	if controller.NextID() != 10 {
		t.Errorf("NextID() = %d, want max(id)+1 = 10", controller.NextID())
	}
}

func TestControllerAdd(t *testing.T) {
	store := &MockStore{}
	controller := newTestController(store)
	controller.Load()

	added, err := controller.Add(Assignment{Name: "Essay", DueDate: date.NewDay(2024, 3, 1), DueTime: date.EndOfDay})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if added.ID != 1 {
		t.Errorf("Add() assigned id %d, want 1", added.ID)
	}

	if controller.NextID() != 2 {
		t.Errorf("NextID() = %d after add, want 2", controller.NextID())
	}

	if len(store.Assignments) != 1 {
		t.Errorf("store holds %d assignments after add, want 1", len(store.Assignments))
	}

	_, err = controller.Add(Assignment{Name: "   "})
	if err != ErrNameRequired {
		t.Errorf("Add() with blank name error = %v, want ErrNameRequired", err)
	}
}

func TestControllerUpdate(t *testing.T) {
	store := &MockStore{Assignments: []Assignment{{ID: 1, Name: "Old", Description: "keep me out"}}}
	controller := newTestController(store)
	controller.Load()

	err := controller.Update(Assignment{ID: 1, Name: "New"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stored := store.Assignments[0]
	if stored.Name != "New" || stored.Description != "" {
		t.Errorf("Update() stored %+v, want full overwrite", stored)
	}

	err = controller.Update(Assignment{ID: 99, Name: "Ghost"})
	if err != ErrNotFound {
		t.Errorf("Update() unknown id error = %v, want ErrNotFound", err)
	}

	err = controller.Update(Assignment{ID: 1, Name: ""})
	if err != ErrNameRequired {
		t.Errorf("Update() blank name error = %v, want ErrNameRequired", err)
	}
}

func TestControllerDelete(t *testing.T) {
	store := &MockStore{Assignments: []Assignment{{ID: 1, Name: "One"}, {ID: 2, Name: "Two"}}}
	controller := newTestController(store)
	controller.Load()

	controller.Delete(1)

	if len(controller.Assignments()) != 1 {
		t.Errorf("collection holds %d assignments after delete, want 1", len(controller.Assignments()))
	}
	if len(store.Assignments) != 1 {
		t.Errorf("store holds %d assignments after delete, want 1", len(store.Assignments))
	}

	// Unknown ids are a no-op
	controller.Delete(42)
	if len(controller.Assignments()) != 1 {
		t.Errorf("collection holds %d assignments after deleting unknown id, want 1", len(controller.Assignments()))
	}
}

func TestControllerSearch(t *testing.T) {
	store := &MockStore{Assignments: []Assignment{
		{ID: 1, Name: "Algorithms essay", LectureSection: "CS 201"},
		{ID: 2, Name: "Lab report", Description: "measure runtime of algorithms", LectureSection: "CS 102"},
		{ID: 3, Name: "Reading", LectureSection: "HIST 110"},
	}}
	controller := newTestController(store)
	controller.Load()

	tests := []struct {
		name    string
		search  string
		wantIDs []int
	}{
		{name: "empty text returns everything", search: "", wantIDs: []int{1, 2, 3}},
		{name: "matches name and description", search: "algorithms", wantIDs: []int{1, 2}},
		{name: "matches lecture section", search: "hist", wantIDs: []int{3}},
		{name: "no match", search: "chemistry", wantIDs: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := controller.Search(tt.search)
			if len(matches) != len(tt.wantIDs) {
				t.Fatalf("Search(%q) returned %d assignments, want %d", tt.search, len(matches), len(tt.wantIDs))
			}
			for i, wantID := range tt.wantIDs {
				if matches[i].ID != wantID {
					t.Errorf("Search(%q)[%d].ID = %d, want %d", tt.search, i, matches[i].ID, wantID)
				}
			}
		})
	}
}

func TestControllerByDate(t *testing.T) {
	day := date.NewDay(2024, 3, 1)
	store := &MockStore{Assignments: []Assignment{
		{ID: 1, Name: "Due that day", DueDate: day},
		{ID: 2, Name: "Due later", DueDate: date.NewDay(2024, 3, 2)},
	}}
	controller := newTestController(store)
	controller.Load()

	matches := controller.ByDate(day)
	if len(matches) != 1 || matches[0].ID != 1 {
		t.Errorf("ByDate() = %+v, want only assignment 1", matches)
	}
}

func TestControllerEditSession(t *testing.T) {
	store := &MockStore{Assignments: []Assignment{{ID: 1, Name: "Original", Description: "untouched"}}}
	controller := newTestController(store)
	controller.Load()

	current, err := controller.BeginEdit(1)
	if err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}

	// Mutating the scratch record must not change anything stored
	current.Name = "Edited"
	controller.SetCurrent(current)

	if store.Assignments[0].Name != "Original" {
		t.Error("in-progress edit reached the store before CommitEdit")
	}
	if controller.Assignments()[0].Name != "Original" {
		t.Error("in-progress edit mutated the live collection")
	}

	committed, err := controller.CommitEdit()
	if err != nil {
		t.Fatalf("CommitEdit() error = %v", err)
	}
	if committed.Name != "Edited" {
		t.Errorf("CommitEdit() returned %+v, want edited record", committed)
	}
	if store.Assignments[0].Name != "Edited" {
		t.Error("CommitEdit() did not persist the scratch record")
	}

	// The session ended with the commit
	_, err = controller.CommitEdit()
	if err != ErrNoEditInProgress {
		t.Errorf("CommitEdit() without session error = %v, want ErrNoEditInProgress", err)
	}
}

func TestControllerConcurrentLoadAndMutation(t *testing.T) {
	// A startup sync reloads the collection while request handlers keep
	// reading and adding
	store := &MockStore{}
	controller := newTestController(store)
	controller.Load()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			controller.Load()
		}()
		go func() {
			defer wg.Done()
			if _, err := controller.Add(Assignment{Name: "Concurrent"}); err != nil {
				t.Errorf("Add() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			for _, assignment := range controller.Assignments() {
				if assignment.Name != "Concurrent" {
					t.Errorf("collection holds unexpected assignment %+v", assignment)
				}
			}
			controller.NextID()
		}()
	}
	wg.Wait()

	if len(store.Assignments) != 16 {
		t.Errorf("store holds %d assignments, want 16", len(store.Assignments))
	}

	ids := map[int]bool{}
	for _, assignment := range store.Assignments {
		if ids[assignment.ID] {
			t.Errorf("id %d was assigned twice", assignment.ID)
		}
		ids[assignment.ID] = true
	}
}

func TestControllerBeginEditUnknownID(t *testing.T) {
	controller := newTestController(&MockStore{})
	controller.Load()

	_, err := controller.BeginEdit(5)
	if err != ErrNotFound {
		t.Errorf("BeginEdit() error = %v, want ErrNotFound", err)
	}
}
