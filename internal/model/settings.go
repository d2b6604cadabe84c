package model

// ThemeMode selects the color scheme.
type ThemeMode string

const (
	ThemeSystem ThemeMode = "SYSTEM"
	ThemeLight  ThemeMode = "LIGHT"
	ThemeDark   ThemeMode = "DARK"
)

// AppSettings holds user preferences (singleton).
type AppSettings struct {
	ThemeMode            ThemeMode `json:"themeMode"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	// DailyReminderTime is minutes after local midnight.
	DailyReminderTime  int    `json:"dailyReminderTime"`
	Currency           string `json:"currency"`
	WeekStartsOnMonday bool   `json:"weekStartsOnMonday"`
	ShowCompletedTasks bool   `json:"showCompletedTasks"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		ThemeMode:            ThemeSystem,
		NotificationsEnabled: true,
		DailyReminderTime:    9 * 60,
		Currency:             "USD",
		WeekStartsOnMonday:   true,
		ShowCompletedTasks:   true,
	}
}

// UserProfile describes the user (singleton).
type UserProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURI string `json:"avatarUri,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Stamp records a save time.
func (p *UserProfile) Stamp(created, now int64) { stamp(&p.CreatedAt, &p.UpdatedAt, created, now) }
func (p *UserProfile) CreatedMillis() int64 { return p.CreatedAt }

// AppData is the whole-database backup envelope.
//
// Collections absent from older backups (or encoded as null) decode as nil,
// which the importer treats as "not present".
type AppData struct {
	Version        int              `json:"version"`
	ExportedAt     int64            `json:"exportedAt"`
	Goals          []*Goal          `json:"goals"`
	Notes          []*Note          `json:"notes"`
	Tasks          []*Task          `json:"tasks"`
	Events         []*CalendarEvent `json:"events"`
	HabitEntries   []*HabitEntry    `json:"habitEntries"`
	Reminders      []*Reminder      `json:"reminders"`
	Habits         []*Habit         `json:"habits"`
	JournalEntries []*JournalEntry  `json:"journalEntries"`
	Transactions   []*Transaction   `json:"transactions"`
	Budgets        []*Budget        `json:"budgets"`
	Logs           []*FinanceLog    `json:"logs"`
	UserProfile    *UserProfile     `json:"userProfile,omitempty"`
	Settings       *AppSettings     `json:"settings"`
}
