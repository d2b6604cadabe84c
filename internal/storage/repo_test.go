package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/lifeledger/internal/errors"
	"github.com/manav03panchal/lifeledger/internal/model"
)

// =============================================================================
// Round trip
// =============================================================================

func TestSaveListRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st := NewStore(kv)

			goals := []*model.Goal{
				{
					ID: "g1", Number: 1, Title: "Run a marathon", Description: "Spring race",
					Category: model.GoalCategoryHealth, Color: "#10B981", TargetDate: int64Ptr(1767225600000),
					Milestones: []model.Milestone{
						{ID: "m1", Title: "10k", IsCompleted: true, Rating: intPtr(4)},
						{ID: "m2", Title: "Half", TargetDate: int64Ptr(1760000000000)},
					},
					CreatedAt: 1, UpdatedAt: 2,
				},
				{ID: "g2", Number: 2, Title: "Read", Category: model.GoalCategoryEducation, CreatedAt: 3, UpdatedAt: 3},
			}
			require.NoError(t, st.Goals.Save(goals))
			assert.Equal(t, goals, st.Goals.List())

			tasks := []*model.Task{
				{ID: "t1", Title: "Pay rent", Priority: model.PriorityHigh, DueDate: int64Ptr(100),
					LinkedGoalID: "g1", RepeatType: model.RepeatMonthly, IsCompleted: true, CompletedAt: int64Ptr(200)},
				{ID: "t2", Title: "Stretch", Priority: model.PriorityLow, RepeatType: model.RepeatNone},
			}
			require.NoError(t, st.Tasks.Save(tasks))
			assert.Equal(t, tasks, st.Tasks.List())

			notes := []*model.Note{{ID: "n1", Title: "Ideas", Content: "line1\nline2", Tags: []string{"a", "b"}, IsPinned: true}}
			require.NoError(t, st.Notes.Save(notes))
			assert.Equal(t, notes, st.Notes.List())

			events := []*model.CalendarEvent{{ID: "e1", Title: "Dentist", Date: 86400000, Color: "#3B82F6"}}
			require.NoError(t, st.Events.Save(events))
			assert.Equal(t, events, st.Events.List())

			reminders := []*model.Reminder{{ID: "r1", Title: "Call mom", ReminderTime: 5, Priority: model.PriorityUrgent,
				RepeatType: model.RepeatWeekly, LinkedGoalID: "g2", IsEnabled: true, Color: "#EF4444"}}
			require.NoError(t, st.Reminders.Save(reminders))
			assert.Equal(t, reminders, st.Reminders.List())

			habits := []*model.Habit{{ID: "h1", Name: "Meditate", Icon: "lotus", TargetDaysPerWeek: 5, IsArchived: true}}
			require.NoError(t, st.Habits.Save(habits))
			assert.Equal(t, habits, st.Habits.List())

			entries := []*model.HabitEntry{{ID: "he1", HabitID: "h1", Date: 1000, IsCompleted: true, Note: "calm"}}
			require.NoError(t, st.HabitEntries.Save(entries))
			assert.Equal(t, entries, st.HabitEntries.List())

			journal := []*model.JournalEntry{{ID: "j1", Date: 9, Title: "Day", Content: "Good day", Mood: model.MoodGreat,
				Gratitude: []string{"sun"}, Achievements: []string{"ran"}, Challenges: []string{"rain"},
				Tags: []string{"run"}, PhotoURIs: []string{"file://p.jpg"}, LinkedGoalIDs: []string{"g1"}}}
			require.NoError(t, st.Journal.Save(journal))
			assert.Equal(t, journal, st.Journal.List())

			logs := []*model.FinanceLog{{ID: "l1", Action: model.ActionSettle, EntityType: model.EntityTransaction,
				EntityID: "x", Description: "settled", Timestamp: 7}}
			require.NoError(t, st.FinanceLogs.Save(logs))
			assert.Equal(t, logs, st.FinanceLogs.List())
		})
	}
}

func TestListAbsentIsEmpty(t *testing.T) {
	st, _ := setupTestStore(t)

	assert.NotNil(t, st.Goals.List())
	assert.Empty(t, st.Goals.List())
	assert.Empty(t, st.Transactions.List())
	assert.Equal(t, 0, st.Notes.Count())
}

func TestCorruptCollectionReadsEmpty(t *testing.T) {
	st, _ := setupTestStore(t)
	require.NoError(t, st.KV().Set(model.KeyGoals, []byte("{not json")))

	assert.Empty(t, st.Goals.List())

	_, err := st.Goals.load()
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

// =============================================================================
// Add / Update / Delete
// =============================================================================

func TestAddStampsIDAndTimestamps(t *testing.T) {
	st, clock := setupTestStore(t)

	task := &model.Task{Title: "  Write report  "}
	require.NoError(t, st.Tasks.Add(task))

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.Millis(clock.Now()), task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	got, ok := st.Tasks.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, task, got)
}

func TestAddOrdering(t *testing.T) {
	st, _ := setupTestStore(t)

	t.Run("notes_prepend", func(t *testing.T) {
		require.NoError(t, st.Notes.Add(&model.Note{Title: "first"}))
		require.NoError(t, st.Notes.Add(&model.Note{Title: "second"}))
		notes := st.Notes.List()
		require.Len(t, notes, 2)
		assert.Equal(t, "second", notes[0].Title)
	})

	t.Run("goals_append", func(t *testing.T) {
		require.NoError(t, st.Goals.Add(&model.Goal{Title: "first", Category: model.GoalCategoryOther}))
		require.NoError(t, st.Goals.Add(&model.Goal{Title: "second", Category: model.GoalCategoryOther}))
		goals := st.Goals.List()
		require.Len(t, goals, 2)
		assert.Equal(t, "first", goals[0].Title)
		assert.Equal(t, 1, goals[0].Number)
		assert.Equal(t, 2, goals[1].Number)
	})

	t.Run("journal_prepend", func(t *testing.T) {
		require.NoError(t, st.Journal.Add(&model.JournalEntry{Title: "older"}))
		require.NoError(t, st.Journal.Add(&model.JournalEntry{Title: "newer"}))
		assert.Equal(t, "newer", st.Journal.List()[0].Title)
		assert.Equal(t, model.MoodOkay, st.Journal.List()[0].Mood)
	})
}

func TestAddRejectsInvalid(t *testing.T) {
	st, _ := setupTestStore(t)

	err := st.Tasks.Add(&model.Task{Title: "   "})
	assert.True(t, errors.IsUserError(err))
	assert.ErrorIs(t, err, errors.ErrTitleRequired)

	err = st.Goals.Add(&model.Goal{Title: "x", Category: "NOPE"})
	assert.ErrorIs(t, err, errors.ErrInvalidCategory)

	assert.Empty(t, st.Tasks.List())
	assert.Empty(t, st.Goals.List())
}

func TestUpdateNeverCreates(t *testing.T) {
	st, _ := setupTestStore(t)

	err := st.Tasks.Update(&model.Task{ID: "ghost", Title: "Boo"})
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "ghost")
	assert.Empty(t, st.Tasks.List())

	err = st.Goals.Update(&model.Goal{ID: "ghost", Title: "Boo", Category: model.GoalCategoryOther})
	assert.True(t, errors.IsNotFound(err))
	assert.Empty(t, st.Goals.List())
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	st, clock := setupTestStore(t)

	note := &model.Note{Title: "draft"}
	require.NoError(t, st.Notes.Add(note))
	created := note.CreatedAt

	clock.Advance(time.Hour)
	edited := &model.Note{ID: note.ID, Title: "final"}
	require.NoError(t, st.Notes.Update(edited))

	got, ok := st.Notes.Get(note.ID)
	require.True(t, ok)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, model.Millis(clock.Now()), got.UpdatedAt)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	st, _ := setupTestStore(t)
	require.NoError(t, st.Events.Add(&model.CalendarEvent{Title: "Gym"}))

	assert.NoError(t, st.Events.Delete("nope"))
	assert.Len(t, st.Events.List(), 1)

	id := st.Events.List()[0].ID
	require.NoError(t, st.Events.Delete(id))
	assert.Empty(t, st.Events.List())
}

// =============================================================================
// Toggles and queries
// =============================================================================

func TestToggleCompletion(t *testing.T) {
	st, clock := setupTestStore(t)
	task := &model.Task{Title: "Pay rent"}
	require.NoError(t, st.Tasks.Add(task))

	clock.Advance(time.Minute)
	require.NoError(t, st.Tasks.ToggleCompletion(task.ID))
	got, _ := st.Tasks.Get(task.ID)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, model.Millis(clock.Now()), *got.CompletedAt)
	assert.Equal(t, model.Millis(clock.Now()), got.UpdatedAt)

	require.NoError(t, st.Tasks.ToggleCompletion(task.ID))
	got, _ = st.Tasks.Get(task.ID)
	assert.False(t, got.IsCompleted)
	assert.Nil(t, got.CompletedAt)

	assert.True(t, errors.IsNotFound(st.Tasks.ToggleCompletion("missing")))
}

func TestListDueOn(t *testing.T) {
	st, clock := setupTestStore(t)
	today := model.Millis(clock.Now())
	tomorrow := model.Millis(clock.Now().AddDate(0, 0, 1))

	require.NoError(t, st.Tasks.Add(&model.Task{Title: "today", DueDate: &today}))
	require.NoError(t, st.Tasks.Add(&model.Task{Title: "tomorrow", DueDate: &tomorrow}))
	require.NoError(t, st.Tasks.Add(&model.Task{Title: "someday"}))

	due := st.Tasks.ListDueOn(today)
	require.Len(t, due, 1)
	assert.Equal(t, "today", due[0].Title)
}

func TestReminders(t *testing.T) {
	st, clock := setupTestStore(t)
	goal := &model.Goal{Title: "Health", Category: model.GoalCategoryHealth, Color: "#123456"}
	require.NoError(t, st.Goals.Add(goal))

	now := model.Millis(clock.Now())
	linked := &model.Reminder{Title: "Run", LinkedGoalID: goal.ID, Priority: model.PriorityLow, ReminderTime: now + 2000, IsEnabled: true}
	dangling := &model.Reminder{Title: "Old", LinkedGoalID: "deleted-goal", Priority: model.PriorityUrgent, ReminderTime: now + 1000, IsEnabled: true}
	past := &model.Reminder{Title: "Past", ReminderTime: now - 1000, IsEnabled: true}
	require.NoError(t, st.Reminders.Add(linked))
	require.NoError(t, st.Reminders.Add(dangling))
	require.NoError(t, st.Reminders.Add(past))

	assert.Equal(t, "#123456", linked.Color)
	assert.Equal(t, model.PriorityUrgent.Color(), dangling.Color)

	upcoming := st.Reminders.ListUpcoming(now)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Old", upcoming[0].Title)

	require.NoError(t, st.Reminders.ToggleEnabled(dangling.ID))
	assert.Len(t, st.Reminders.ListUpcoming(now), 1)
	assert.True(t, errors.IsNotFound(st.Reminders.ToggleEnabled("missing")))
}

func TestLinkedGoal(t *testing.T) {
	st, _ := setupTestStore(t)
	goal := &model.Goal{Title: "Learn Go", Category: model.GoalCategoryEducation}
	require.NoError(t, st.Goals.Add(goal))

	got, ok := st.LinkedGoal(goal.ID)
	assert.True(t, ok)
	assert.Equal(t, goal.ID, got.ID)

	_, ok = st.LinkedGoal("")
	assert.False(t, ok)
	_, ok = st.LinkedGoal("gone")
	assert.False(t, ok)
}

func TestMilestones(t *testing.T) {
	st, clock := setupTestStore(t)
	goal := &model.Goal{Title: "Ship", Category: model.GoalCategoryCareer,
		Milestones: []model.Milestone{{Title: "Design"}}}
	require.NoError(t, st.Goals.Add(goal))
	require.NotEmpty(t, goal.Milestones[0].ID)

	m, err := st.Goals.AddMilestone(goal.ID, model.Milestone{Title: "Build"})
	require.NoError(t, err)

	require.NoError(t, st.Goals.ToggleMilestone(goal.ID, m.ID))
	require.NoError(t, st.Goals.RateMilestone(goal.ID, m.ID, 5))
	got, _ := st.Goals.Get(goal.ID)
	require.Len(t, got.Milestones, 2)
	assert.Equal(t, "Design", got.Milestones[0].Title)
	assert.True(t, got.Milestones[1].IsCompleted)
	assert.Equal(t, 5, *got.Milestones[1].Rating)
	assert.InDelta(t, 0.5, got.Progress(), 1e-9)

	before := got.UpdatedAt
	clock.Advance(time.Minute)
	err = st.Goals.ToggleMilestone(goal.ID, "missing")
	assert.True(t, errors.IsNotFound(err))
	got, _ = st.Goals.Get(goal.ID)
	assert.Equal(t, before, got.UpdatedAt)

	assert.Error(t, st.Goals.RateMilestone(goal.ID, m.ID, 9))
	assert.True(t, errors.IsNotFound(st.Goals.ToggleMilestone("missing", m.ID)))
}

func TestNoteSearchAndPin(t *testing.T) {
	st, _ := setupTestStore(t)
	require.NoError(t, st.Notes.Add(&model.Note{Title: "Groceries", Content: "milk", Tags: []string{"Home "}}))
	require.NoError(t, st.Notes.Add(&model.Note{Title: "Work", Content: "standup"}))

	assert.Len(t, st.Notes.Search("MILK"), 1)
	assert.Len(t, st.Notes.Search("home"), 1)
	assert.Len(t, st.Notes.Search(""), 2)

	n := st.Notes.Search("standup")[0]
	require.NoError(t, st.Notes.TogglePinned(n.ID))
	got, _ := st.Notes.Get(n.ID)
	assert.True(t, got.IsPinned)
}

func TestEventsByDay(t *testing.T) {
	st, clock := setupTestStore(t)
	now := model.Millis(clock.Now())
	require.NoError(t, st.Events.Add(&model.CalendarEvent{Title: "Dentist", Date: now}))
	require.NoError(t, st.Events.Add(&model.CalendarEvent{Title: "Later", Date: model.Millis(clock.Now().AddDate(0, 0, 3))}))

	on := st.Events.ListOn(now)
	require.Len(t, on, 1)
	assert.Equal(t, model.DayStart(now), on[0].Date)

	week := st.Events.ListBetween(model.DayStart(now), model.Millis(clock.Now().AddDate(0, 0, 7)))
	assert.Len(t, week, 2)
}

// =============================================================================
// Habits
// =============================================================================

func TestHabitEntryUpsert(t *testing.T) {
	st, clock := setupTestStore(t)
	habit := &model.Habit{Name: "Meditate"}
	require.NoError(t, st.Habits.Add(habit))

	morning := model.Millis(clock.Now())
	evening := model.Millis(clock.Now().Add(8 * time.Hour))

	first := &model.HabitEntry{HabitID: habit.ID, Date: morning, IsCompleted: false}
	second := &model.HabitEntry{HabitID: habit.ID, Date: evening, IsCompleted: true, Note: "done"}
	require.NoError(t, st.HabitEntries.Add(first))
	require.NoError(t, st.HabitEntries.Add(second))

	entries := st.HabitEntries.ListForHabit(habit.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, second, entries[0])

	got, ok := st.HabitEntries.EntryOn(habit.ID, morning)
	require.True(t, ok)
	assert.True(t, got.IsCompleted)

	assert.Error(t, st.HabitEntries.Add(&model.HabitEntry{Date: morning}))
}

func TestHabitDeleteCascades(t *testing.T) {
	st, clock := setupTestStore(t)
	keep := &model.Habit{Name: "Read"}
	drop := &model.Habit{Name: "Smoke-free"}
	require.NoError(t, st.Habits.Add(keep))
	require.NoError(t, st.Habits.Add(drop))

	day := model.Millis(clock.Now())
	require.NoError(t, st.HabitEntries.Add(&model.HabitEntry{HabitID: keep.ID, Date: day, IsCompleted: true}))
	require.NoError(t, st.HabitEntries.Add(&model.HabitEntry{HabitID: drop.ID, Date: day, IsCompleted: true}))

	require.NoError(t, st.Habits.Delete(drop.ID))
	assert.Len(t, st.Habits.List(), 1)
	entries := st.HabitEntries.List()
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].HabitID)

	assert.NoError(t, st.Habits.Delete("missing"))
}

func TestHabitArchive(t *testing.T) {
	st, _ := setupTestStore(t)
	h := &model.Habit{Name: "Floss"}
	require.NoError(t, st.Habits.Add(h))

	require.NoError(t, st.Habits.SetArchived(h.ID, true))
	assert.Empty(t, st.Habits.Active())
	assert.Len(t, st.Habits.List(), 1)
}

// =============================================================================
// Whole-store operations
// =============================================================================

func TestFlags(t *testing.T) {
	st, _ := setupTestStore(t)

	assert.True(t, st.IsFirstLaunch())
	require.NoError(t, st.MarkLaunched())
	assert.False(t, st.IsFirstLaunch())

	assert.False(t, st.OnboardingComplete())
	require.NoError(t, st.SetOnboardingComplete(true))
	assert.True(t, st.OnboardingComplete())

	assert.Equal(t, int64(0), st.LastSync())
	require.NoError(t, st.SetLastSync(42))
	assert.Equal(t, int64(42), st.LastSync())
}

func TestClearAll(t *testing.T) {
	st, _ := setupTestStore(t)
	require.NoError(t, st.Notes.Add(&model.Note{Title: "x"}))
	require.NoError(t, st.MarkLaunched())

	require.NoError(t, st.ClearAll())
	assert.Empty(t, st.Notes.List())
	assert.True(t, st.IsFirstLaunch())
}

func TestRestoreSkipsNilCollections(t *testing.T) {
	st, _ := setupTestStore(t)
	require.NoError(t, st.Reminders.Add(&model.Reminder{Title: "keep me"}))
	require.NoError(t, st.Goals.Add(&model.Goal{Title: "replace me", Category: model.GoalCategoryOther}))

	data := &model.AppData{
		Goals:    []*model.Goal{},
		Notes:    []*model.Note{{ID: "n", Title: "restored"}},
		Settings: model.DefaultSettings(),
	}
	require.NoError(t, st.Restore(data, 99))

	assert.Empty(t, st.Goals.List())
	assert.Len(t, st.Notes.List(), 1)
	assert.Len(t, st.Reminders.List(), 1)
	assert.Equal(t, int64(99), st.LastSync())
}
