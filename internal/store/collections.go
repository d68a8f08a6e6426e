package store

import "github.com/studydesk/studydesk/internal/model"

// Typed accessors for the four entity collections. Reads degrade to the
// empty collection per the Store contract; writes replace the whole blob.

// Tasks loads the task collection.
func Tasks(s Store) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.Get(KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks replaces the task collection.
func SaveTasks(s Store, tasks []model.Task) error {
	return s.Set(KeyTasks, tasks)
}

// Sessions loads the study session collection.
func Sessions(s Store) ([]model.Session, error) {
	var sessions []model.Session
	if err := s.Get(KeySessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SaveSessions replaces the study session collection.
func SaveSessions(s Store, sessions []model.Session) error {
	return s.Set(KeySessions, sessions)
}

// Notes loads the note collection.
func Notes(s Store) ([]model.Note, error) {
	var notes []model.Note
	if err := s.Get(KeyNotes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNotes replaces the note collection.
func SaveNotes(s Store, notes []model.Note) error {
	return s.Set(KeyNotes, notes)
}

// Goals loads the goal collection.
func Goals(s Store) ([]model.Goal, error) {
	var goals []model.Goal
	if err := s.Get(KeyGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// SaveGoals replaces the goal collection.
func SaveGoals(s Store, goals []model.Goal) error {
	return s.Set(KeyGoals, goals)
}
