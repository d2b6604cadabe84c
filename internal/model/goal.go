package model

// GoalCategory classifies a goal.
type GoalCategory string

const (
	GoalCategoryPersonal      GoalCategory = "PERSONAL"
	GoalCategoryCareer        GoalCategory = "CAREER"
	GoalCategoryHealth        GoalCategory = "HEALTH"
	GoalCategoryFinance       GoalCategory = "FINANCE"
	GoalCategoryEducation     GoalCategory = "EDUCATION"
	GoalCategoryRelationships GoalCategory = "RELATIONSHIPS"
	GoalCategoryCreativity    GoalCategory = "CREATIVITY"
	GoalCategoryOther         GoalCategory = "OTHER"
)

// GoalCategories returns every goal category in display order.
func GoalCategories() []GoalCategory {
	return []GoalCategory{
		GoalCategoryPersonal,
		GoalCategoryCareer,
		GoalCategoryHealth,
		GoalCategoryFinance,
		GoalCategoryEducation,
		GoalCategoryRelationships,
		GoalCategoryCreativity,
		GoalCategoryOther,
	}
}

// IsValid reports whether c is a known category.
func (c GoalCategory) IsValid() bool {
	for _, v := range GoalCategories() {
		if c == v {
			return true
		}
	}
	return false
}

// Milestone is a checkpoint inside a goal.
type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
	TargetDate  *int64 `json:"targetDate,omitempty"`
	// Rating is an optional 1-5 quality score given on completion.
	Rating *int `json:"rating,omitempty"`
}

// Goal is a long-running objective broken into milestones.
type Goal struct {
	ID          string       `json:"id"`
	Number      int          `json:"number"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    GoalCategory `json:"category"`
	Color       string       `json:"color"`
	TargetDate  *int64       `json:"targetDate,omitempty"`
	Milestones  []Milestone  `json:"milestones"`
	CreatedAt   int64        `json:"createdAt"`
	UpdatedAt   int64        `json:"updatedAt"`
}

func (g *Goal) GetID() string { return g.ID }
func (g *Goal) SetID(id string) { g.ID = id }
func (g *Goal) Stamp(created, now int64) { stamp(&g.CreatedAt, &g.UpdatedAt, created, now) }
func (g *Goal) CreatedMillis() int64 { return g.CreatedAt }

// CompletedMilestones returns how many milestones are done.
func (g *Goal) CompletedMilestones() int {
	n := 0
	for _, m := range g.Milestones {
		if m.IsCompleted {
			n++
		}
	}
	return n
}

// Progress returns the completed fraction of milestones in [0, 1].
// A goal without milestones has progress 0.
func (g *Goal) Progress() float64 {
	if len(g.Milestones) == 0 {
		return 0
	}
	return float64(g.CompletedMilestones()) / float64(len(g.Milestones))
}

// IsCompleted reports whether the goal has milestones and all are done.
func (g *Goal) IsCompleted() bool {
	return len(g.Milestones) > 0 && g.CompletedMilestones() == len(g.Milestones)
}
