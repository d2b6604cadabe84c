package storage

import (
	"github.com/google/uuid"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/validate"
)

// GoalRepo provides goal persistence. New goals are appended.
type GoalRepo struct {
	*collection[*model.Goal]
}

// Add validates and stores a new goal. A zero Number is assigned the next
// free number; milestones without ids get one.
func (r *GoalRepo) Add(g *model.Goal) error {
	if err := validate.Goal(g); err != nil {
		return err
	}
	fillMilestoneIDs(g)
	r.prepare(g)

	return r.mutate(func(goals []*model.Goal) ([]*model.Goal, bool, error) {
		if g.Number == 0 {
			g.Number = nextGoalNumber(goals)
		}
		return r.insert(goals, g), true, nil
	})
}

// Update validates and replaces an existing goal.
func (r *GoalRepo) Update(g *model.Goal) error {
	if err := validate.Goal(g); err != nil {
		return err
	}
	fillMilestoneIDs(g)
	return r.collection.Update(g)
}

// AddMilestone appends a milestone to a goal.
func (r *GoalRepo) AddMilestone(goalID string, m model.Milestone) (*model.Milestone, error) {
	if err := validate.Title("milestone title", m.Title); err != nil {
		return nil, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	err := r.modify(goalID, func(g *model.Goal) error {
		g.Milestones = append(g.Milestones, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ToggleMilestone flips a milestone's completion flag.
func (r *GoalRepo) ToggleMilestone(goalID, milestoneID string) error {
	return r.modify(goalID, func(g *model.Goal) error {
		m := findMilestone(g, milestoneID)
		if m == nil {
			return errors.NotFound("milestone", milestoneID)
		}
		m.IsCompleted = !m.IsCompleted
		return nil
	})
}

// RateMilestone sets a milestone's 1-5 rating.
func (r *GoalRepo) RateMilestone(goalID, milestoneID string, rating int) error {
	if err := validate.Rating(&rating); err != nil {
		return err
	}
	return r.modify(goalID, func(g *model.Goal) error {
		m := findMilestone(g, milestoneID)
		if m == nil {
			return errors.NotFound("milestone", milestoneID)
		}
		m.Rating = &rating
		return nil
	})
}

func findMilestone(g *model.Goal, id string) *model.Milestone {
	for i := range g.Milestones {
		if g.Milestones[i].ID == id {
			return &g.Milestones[i]
		}
	}
	return nil
}

func fillMilestoneIDs(g *model.Goal) {
	for i := range g.Milestones {
		if g.Milestones[i].ID == "" {
			g.Milestones[i].ID = uuid.NewString()
		}
	}
}

func nextGoalNumber(goals []*model.Goal) int {
	next := 1
	for _, g := range goals {
		if g.Number >= next {
			next = g.Number + 1
		}
	}
	return next
}
