package assignments

// MockStore is an in-memory assignment store for testing
type MockStore struct {
	Assignments []Assignment
	FirstRun    bool
	Initialized bool
	SaveErr     error
	SaveCalls   int
}

// LoadAll returns the in-memory collection
func (s *MockStore) LoadAll() []Assignment {
	loaded := make([]Assignment, len(s.Assignments))
	copy(loaded, s.Assignments)
	return loaded
}

// SaveAll replaces the in-memory collection
func (s *MockStore) SaveAll(assignments []Assignment) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.SaveCalls++
	s.Assignments = make([]Assignment, len(assignments))
	copy(s.Assignments, assignments)
	return nil
}

// SaveOne replaces by id or appends
func (s *MockStore) SaveOne(assignment Assignment) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.SaveCalls++
	for i, existing := range s.Assignments {
		if existing.ID == assignment.ID {
			s.Assignments[i] = assignment
			return nil
		}
	}

	s.Assignments = append(s.Assignments, assignment)
	return nil
}

// DeleteOne removes by id
func (s *MockStore) DeleteOne(id int) error {
	kept := s.Assignments[:0]
	for _, existing := range s.Assignments {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}

	s.Assignments = kept
	return nil
}

// IsFirstRun reports the configured first-run flag
func (s *MockStore) IsFirstRun() bool {
	return s.FirstRun
}

// MarkInitialized flips the first-run flag
func (s *MockStore) MarkInitialized() error {
	s.FirstRun = false
	s.Initialized = true
	return nil
}
