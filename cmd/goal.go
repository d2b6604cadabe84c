package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
)

// Goal command flags.
var (
	goalFlagCategory    string
	goalFlagDescription string
	goalFlagColor       string
	goalFlagTarget      string
	goalUpdTitle        string
	goalUpdCategory     string
	goalUpdDescription  string
	goalUpdColor        string
	goalUpdTarget       string
	goalFlagMilestones  string
	goalListCategory    string
	milestoneFlagTarget string
)

// goalCmd represents the goal command.
var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals", "g"},
	Short:   "Manage goals and milestones",
	Long: `Track long-running goals broken into milestones. Progress is the share of
completed milestones.

Examples:
  lifeledger goal add "Run a marathon" --category health --target "2026-10-01"
  lifeledger goal add "Learn Go" --milestones "Tour,Book,Project"
  lifeledger goal milestone add 3f2a "Run 10k"
  lifeledger goal milestone toggle 3f2a 9c1d
  lifeledger goal list`,
	RunE: runGoalList,
}

var goalAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	RunE:    runGoalList,
}

var goalShowCmd = &cobra.Command{
	Use:               "show ID",
	Short:             "Show a goal with milestones and linked tasks",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeGoals,
	RunE:              runGoalShow,
}

var goalUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Update a goal",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeGoals,
	RunE:              runGoalUpdate,
}

var goalDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm", "remove"},
	Short:             "Delete a goal",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeGoals,
	RunE:              runGoalDelete,
}

var milestoneCmd = &cobra.Command{
	Use:     "milestone",
	Aliases: []string{"ms"},
	Short:   "Manage a goal's milestones",
}

var milestoneAddCmd = &cobra.Command{
	Use:               "add GOAL TITLE",
	Short:             "Append a milestone to a goal",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeGoals,
	RunE:              runMilestoneAdd,
}

var milestoneToggleCmd = &cobra.Command{
	Use:               "toggle GOAL MILESTONE",
	Aliases:           []string{"done"},
	Short:             "Flip a milestone's completion",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeGoals,
	RunE:              runMilestoneToggle,
}

var milestoneRateCmd = &cobra.Command{
	Use:               "rate GOAL MILESTONE RATING",
	Short:             "Rate a milestone from 1 to 5",
	Args:              cobra.ExactArgs(3),
	ValidArgsFunction: completeGoals,
	RunE:              runMilestoneRate,
}

func goalCategoryNames() []string {
	var names []string
	for _, c := range model.GoalCategories() {
		names = append(names, strings.ToLower(string(c)))
	}
	return names
}

func init() {
	categories := strings.Join(goalCategoryNames(), ", ")

	goalAddCmd.Flags().StringVarP(&goalFlagCategory, "category", "c", "other", "Category: "+categories)
	goalAddCmd.Flags().StringVarP(&goalFlagDescription, "description", "d", "", "Description")
	goalAddCmd.Flags().StringVar(&goalFlagColor, "hex", "", "Hex color like #7C3AED")
	goalAddCmd.Flags().StringVarP(&goalFlagTarget, "target", "t", "", "Target date (e.g. 'next month', 2026-12-31)")
	goalAddCmd.Flags().StringVarP(&goalFlagMilestones, "milestones", "m", "", "Comma-separated milestone titles")
	_ = goalAddCmd.RegisterFlagCompletionFunc("category", completeValues(goalCategoryNames()...))

	goalUpdateCmd.Flags().StringVar(&goalUpdTitle, "title", "", "New title")
	goalUpdateCmd.Flags().StringVarP(&goalUpdCategory, "category", "c", "", "Category: "+categories)
	goalUpdateCmd.Flags().StringVarP(&goalUpdDescription, "description", "d", "", "Description")
	goalUpdateCmd.Flags().StringVar(&goalUpdColor, "hex", "", "Hex color")
	goalUpdateCmd.Flags().StringVarP(&goalUpdTarget, "target", "t", "", "Target date, or 'none' to clear")

	goalListCmd.Flags().StringVarP(&goalListCategory, "category", "c", "", "Filter by category")

	milestoneAddCmd.Flags().StringVarP(&milestoneFlagTarget, "target", "t", "", "Target date")

	milestoneCmd.AddCommand(milestoneAddCmd, milestoneToggleCmd, milestoneRateCmd)
	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalShowCmd, goalUpdateCmd, goalDeleteCmd, milestoneCmd)
	rootCmd.AddCommand(goalCmd)
}

func findGoal(ref string) (*model.Goal, error) {
	// "#3" or "3" addresses a goal by its number.
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		for _, g := range ctx.Store.Goals.List() {
			if g.Number == n {
				return g, nil
			}
		}
	}
	return findRecord("goal", ctx.Store.Goals.List(), ref)
}

func findMilestone(g *model.Goal, ref string) (*model.Milestone, error) {
	var match *model.Milestone
	for i := range g.Milestones {
		m := &g.Milestones[i]
		if m.ID == ref {
			return m, nil
		}
		if strings.HasPrefix(m.ID, ref) || strings.EqualFold(m.Title, ref) {
			if match != nil {
				return nil, errors.NewUserErrorWithField("milestone", ref, "Ambiguous milestone", "Type more characters of the id")
			}
			match = m
		}
	}
	if match == nil {
		return nil, errors.NotFound("milestone", ref)
	}
	return match, nil
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	target, err := optionalDay(goalFlagTarget)
	if err != nil {
		return err
	}

	goal := &model.Goal{
		Title:       args[0],
		Description: goalFlagDescription,
		Category:    model.GoalCategory(enumValue(goalFlagCategory)),
		Color:       goalFlagColor,
		TargetDate:  target,
	}
	for _, title := range splitList(goalFlagMilestones) {
		goal.Milestones = append(goal.Milestones, model.Milestone{Title: title})
	}

	if err := ctx.Store.Goals.Add(goal); err != nil {
		return err
	}
	return printRecord("created", "goal", goal.ID, goal,
		fmt.Sprintf("Added goal #%d %s (%s)", goal.Number, goal.Title, short(goal.ID)))
}

func runGoalList(cmd *cobra.Command, args []string) error {
	goals := ctx.Store.Goals.List()
	if goalListCategory != "" {
		want := model.GoalCategory(enumValue(goalListCategory))
		var filtered []*model.Goal
		for _, g := range goals {
			if g.Category == want {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}
	return printList("goals", goals, (*output.CLIFormatter).PrintGoals)
}

func runGoalShow(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}
	tasks := ctx.Store.Tasks.ListForGoal(goal.ID)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{
			"goal":  goal,
			"tasks": tasks,
		})
	}

	cli := ctx.CLIFormatter()
	cli.PrintGoal(goal)
	if len(tasks) > 0 {
		cli.Println("")
		cli.Title("Linked tasks")
		cli.PrintTasks(tasks)
	}
	return nil
}

func runGoalUpdate(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		goal.Title = goalUpdTitle
	}
	if flags.Changed("description") {
		goal.Description = goalUpdDescription
	}
	if flags.Changed("category") {
		goal.Category = model.GoalCategory(enumValue(goalUpdCategory))
	}
	if flags.Changed("hex") {
		goal.Color = goalUpdColor
	}
	if flags.Changed("target") {
		if strings.EqualFold(goalUpdTarget, "none") {
			goal.TargetDate = nil
		} else if goal.TargetDate, err = optionalDay(goalUpdTarget); err != nil {
			return err
		}
	}

	if err := ctx.Store.Goals.Update(goal); err != nil {
		return err
	}
	return printRecord("updated", "goal", goal.ID, goal, "Updated goal "+goal.Title)
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Goals.Delete(goal.ID); err != nil {
		return err
	}
	return printRecord("deleted", "goal", goal.ID, nil, "Deleted goal "+goal.Title)
}

func runMilestoneAdd(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}
	target, err := optionalDay(milestoneFlagTarget)
	if err != nil {
		return err
	}

	m, err := ctx.Store.Goals.AddMilestone(goal.ID, model.Milestone{Title: args[1], TargetDate: target})
	if err != nil {
		return err
	}
	return printRecord("created", "milestone", m.ID, m,
		fmt.Sprintf("Added milestone %s to %s", m.Title, goal.Title))
}

func runMilestoneToggle(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}
	m, err := findMilestone(goal, args[1])
	if err != nil {
		return err
	}
	if err := ctx.Store.Goals.ToggleMilestone(goal.ID, m.ID); err != nil {
		return err
	}

	updated, _ := ctx.Store.Goals.Get(goal.ID)
	state := "reopened"
	if !m.IsCompleted {
		state = "completed"
	}
	return printRecord("updated", "goal", goal.ID, updated,
		fmt.Sprintf("Milestone %s %s (%s)", m.Title, state, output.FormatPercent(updated.Progress())))
}

func runMilestoneRate(cmd *cobra.Command, args []string) error {
	rating, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.NewUserErrorWithField("rating", args[2], "Rating must be a number", "Use a whole number from 1 to 5")
	}
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}
	m, err := findMilestone(goal, args[1])
	if err != nil {
		return err
	}
	if err := ctx.Store.Goals.RateMilestone(goal.ID, m.ID, rating); err != nil {
		return err
	}
	return printStatus("updated", fmt.Sprintf("Rated %s %s", m.Title, strings.Repeat("★", rating)))
}
