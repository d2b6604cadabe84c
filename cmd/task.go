package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/model"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/parser"
)

// Task command flags.
var (
	taskFlagDue         string
	taskFlagPriority    string
	taskFlagRepeat      string
	taskFlagGoal        string
	taskFlagDescription string

	taskUpdTitle       string
	taskUpdDue         string
	taskUpdPriority    string
	taskUpdRepeat      string
	taskUpdGoal        string
	taskUpdDescription string

	taskListAll  bool
	taskListGoal string
	taskListDue  string
)

// taskCmd represents the task command.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
	Long: `Create, complete and organize tasks. Tasks can be linked to a goal and carry
a due date parsed from natural language.

Examples:
  lifeledger task add "Pay rent" --due tomorrow --priority high
  lifeledger task add "Water plants" --due +3d --repeat weekly
  lifeledger task done 3f2a
  lifeledger task list --due today`,
	RunE: runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List open tasks",
	RunE:    runTaskList,
}

var taskDoneCmd = &cobra.Command{
	Use:               "done ID",
	Aliases:           []string{"toggle", "complete"},
	Short:             "Toggle a task's completion",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskDone,
}

var taskUpdateCmd = &cobra.Command{
	Use:               "update ID",
	Aliases:           []string{"edit"},
	Short:             "Update a task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskUpdate,
}

var taskDeleteCmd = &cobra.Command{
	Use:               "delete ID",
	Aliases:           []string{"rm", "remove"},
	Short:             "Delete a task",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTasks,
	RunE:              runTaskDelete,
}

var priorityNames = []string{"low", "medium", "high", "urgent"}
var repeatNames = []string{"none", "daily", "weekly", "monthly", "yearly"}

func init() {
	taskAddCmd.Flags().StringVar(&taskFlagDue, "due", "", "Due date (e.g. tomorrow, 'next friday', +2d)")
	taskAddCmd.Flags().StringVarP(&taskFlagPriority, "priority", "p", "medium", "Priority: low, medium, high, urgent")
	taskAddCmd.Flags().StringVarP(&taskFlagRepeat, "repeat", "r", "none", "Repeat: none, daily, weekly, monthly, yearly")
	taskAddCmd.Flags().StringVarP(&taskFlagGoal, "goal", "g", "", "Link to a goal (id or #number)")
	taskAddCmd.Flags().StringVarP(&taskFlagDescription, "description", "d", "", "Description")
	_ = taskAddCmd.RegisterFlagCompletionFunc("priority", completeValues(priorityNames...))
	_ = taskAddCmd.RegisterFlagCompletionFunc("repeat", completeValues(repeatNames...))
	_ = taskAddCmd.RegisterFlagCompletionFunc("goal", completeGoals)

	taskUpdateCmd.Flags().StringVar(&taskUpdTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVar(&taskUpdDue, "due", "", "Due date, or 'none' to clear")
	taskUpdateCmd.Flags().StringVarP(&taskUpdPriority, "priority", "p", "", "Priority")
	taskUpdateCmd.Flags().StringVarP(&taskUpdRepeat, "repeat", "r", "", "Repeat")
	taskUpdateCmd.Flags().StringVarP(&taskUpdGoal, "goal", "g", "", "Link to a goal, or 'none' to unlink")
	taskUpdateCmd.Flags().StringVarP(&taskUpdDescription, "description", "d", "", "Description")

	taskListCmd.Flags().BoolVarP(&taskListAll, "all", "a", false, "Include completed tasks")
	taskListCmd.Flags().StringVarP(&taskListGoal, "goal", "g", "", "Only tasks linked to this goal")
	taskListCmd.Flags().StringVar(&taskListDue, "due", "", "Only tasks due on this day (e.g. today)")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskUpdateCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

// dueMillis parses a due date, keeping an explicit time of day.
func dueMillis(input string) (*int64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	ms, err := parser.ParseMillis(input, ctx.Now())
	if err != nil {
		return nil, err
	}
	return &ms, nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	due, err := dueMillis(taskFlagDue)
	if err != nil {
		return err
	}

	task := &model.Task{
		Title:       args[0],
		Description: taskFlagDescription,
		Priority:    model.Priority(enumValue(taskFlagPriority)),
		RepeatType:  model.RepeatType(enumValue(taskFlagRepeat)),
		DueDate:     due,
	}
	if taskFlagGoal != "" {
		goal, err := findGoal(taskFlagGoal)
		if err != nil {
			return err
		}
		task.LinkedGoalID = goal.ID
	}

	if err := ctx.Store.Tasks.Add(task); err != nil {
		return err
	}

	msg := "Added task " + task.Title + " (" + short(task.ID) + ")"
	if due != nil {
		msg += ", " + parser.FormatDue(*due, ctx.Now())
	}
	return printRecord("created", "task", task.ID, task, msg)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	var tasks []*model.Task
	switch {
	case taskListDue != "":
		day, err := parser.ParseDay(taskListDue, ctx.Now())
		if err != nil {
			return err
		}
		tasks = ctx.Store.Tasks.ListDueOn(day)
	case taskListGoal != "":
		goal, err := findGoal(taskListGoal)
		if err != nil {
			return err
		}
		tasks = ctx.Store.Tasks.ListForGoal(goal.ID)
	default:
		tasks = ctx.Store.Tasks.List()
	}

	showCompleted := taskListAll || (taskListDue != "" && ctx.Store.Settings.Get().ShowCompletedTasks)
	if !showCompleted {
		open := tasks[:0:0]
		for _, t := range tasks {
			if !t.IsCompleted {
				open = append(open, t)
			}
		}
		tasks = open
	}
	return printList("tasks", tasks, (*output.CLIFormatter).PrintTasks)
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	task, err := findRecord("task", ctx.Store.Tasks.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Tasks.ToggleCompletion(task.ID); err != nil {
		return err
	}

	updated, _ := ctx.Store.Tasks.Get(task.ID)
	msg := "Completed " + task.Title
	if !updated.IsCompleted {
		msg = "Reopened " + task.Title
	}
	return printRecord("updated", "task", task.ID, updated, msg)
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	task, err := findRecord("task", ctx.Store.Tasks.List(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		task.Title = taskUpdTitle
	}
	if flags.Changed("description") {
		task.Description = taskUpdDescription
	}
	if flags.Changed("priority") {
		task.Priority = model.Priority(enumValue(taskUpdPriority))
	}
	if flags.Changed("repeat") {
		task.RepeatType = model.RepeatType(enumValue(taskUpdRepeat))
	}
	if flags.Changed("due") {
		if strings.EqualFold(taskUpdDue, "none") {
			task.DueDate = nil
		} else if task.DueDate, err = dueMillis(taskUpdDue); err != nil {
			return err
		}
	}
	if flags.Changed("goal") {
		task.LinkedGoalID = ""
		if !strings.EqualFold(taskUpdGoal, "none") {
			goal, err := findGoal(taskUpdGoal)
			if err != nil {
				return err
			}
			task.LinkedGoalID = goal.ID
		}
	}

	if err := ctx.Store.Tasks.Update(task); err != nil {
		return err
	}
	return printRecord("updated", "task", task.ID, task, "Updated task "+task.Title)
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	task, err := findRecord("task", ctx.Store.Tasks.List(), args[0])
	if err != nil {
		return err
	}
	if err := ctx.Store.Tasks.Delete(task.ID); err != nil {
		return err
	}
	return printRecord("deleted", "task", task.ID, nil, "Deleted task "+task.Title)
}
