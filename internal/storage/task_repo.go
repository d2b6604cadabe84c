package storage

import (
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// TaskRepo provides task persistence. New tasks are appended.
type TaskRepo struct {
	*collection[*model.Task]
}

// Add validates and stores a new task.
func (r *TaskRepo) Add(t *model.Task) error {
	cleanTask(t)
	if err := validate.Task(t); err != nil {
		return err
	}
	if t.IsCompleted && t.CompletedAt == nil {
		now := r.st.nowMillis()
		t.CompletedAt = &now
	}
	return r.collection.Add(t)
}

// Update validates and replaces an existing task.
func (r *TaskRepo) Update(t *model.Task) error {
	cleanTask(t)
	if err := validate.Task(t); err != nil {
		return err
	}
	return r.collection.Update(t)
}

// ToggleCompletion flips a task's completion flag, setting completedAt when
// the task becomes complete and clearing it otherwise.
func (r *TaskRepo) ToggleCompletion(id string) error {
	return r.modify(id, func(t *model.Task) error {
		t.IsCompleted = !t.IsCompleted
		if t.IsCompleted {
			now := r.st.nowMillis()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
		return nil
	})
}

// ListDueOn returns tasks whose due date falls on the local day of dayMillis.
func (r *TaskRepo) ListDueOn(dayMillis int64) []*model.Task {
	var due []*model.Task
	for _, t := range r.list() {
		if t.IsDueOn(dayMillis) {
			due = append(due, t)
		}
	}
	return due
}

// ListForGoal returns tasks linked to goalID.
func (r *TaskRepo) ListForGoal(goalID string) []*model.Task {
	var linked []*model.Task
	for _, t := range r.list() {
		if t.LinkedGoalID == goalID {
			linked = append(linked, t)
		}
	}
	return linked
}

func cleanTask(t *model.Task) {
	t.Title = validate.CleanTitle(t.Title)
	t.Description = validate.CleanText(t.Description)
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.RepeatType == "" {
		t.RepeatType = model.RepeatNone
	}
}
