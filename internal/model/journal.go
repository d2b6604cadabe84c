package model

// Mood is the author's mood for a journal entry.
type Mood string

const (
	MoodGreat    Mood = "GREAT"
	MoodGood     Mood = "GOOD"
	MoodOkay     Mood = "OKAY"
	MoodBad      Mood = "BAD"
	MoodTerrible Mood = "TERRIBLE"
)

// Moods returns every mood, best first.
func Moods() []Mood {
	return []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible}
}

// IsValid reports whether m is a known mood.
func (m Mood) IsValid() bool {
	for _, known := range Moods() {
		if m == known {
			return true
		}
	}
	return false
}

// Color returns the display color for the mood.
func (m Mood) Color() string {
	switch m {
	case MoodGreat:
		return "#10B981"
	case MoodGood:
		return "#84CC16"
	case MoodBad:
		return "#F97316"
	case MoodTerrible:
		return "#EF4444"
	default:
		return "#F59E0B"
	}
}

// Emoji returns the emoji for the mood.
func (m Mood) Emoji() string {
	switch m {
	case MoodGreat:
		return "😄"
	case MoodGood:
		return "🙂"
	case MoodBad:
		return "🙁"
	case MoodTerrible:
		return "😢"
	default:
		return "😐"
	}
}

// JournalEntry is a dated journal page.
type JournalEntry struct {
	ID            string   `json:"id"`
	Date          int64    `json:"date"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Mood          Mood     `json:"mood"`
	Gratitude     []string `json:"gratitude,omitempty"`
	Achievements  []string `json:"achievements,omitempty"`
	Challenges    []string `json:"challenges,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	PhotoURIs     []string `json:"photoUris,omitempty"`
	LinkedGoalIDs []string `json:"linkedGoalIds,omitempty"`
	CreatedAt     int64    `json:"createdAt"`
	UpdatedAt     int64    `json:"updatedAt"`
}

func (j *JournalEntry) GetID() string { return j.ID }
func (j *JournalEntry) SetID(id string) { j.ID = id }
func (j *JournalEntry) Stamp(created, now int64) { stamp(&j.CreatedAt, &j.UpdatedAt, created, now) }
func (j *JournalEntry) CreatedMillis() int64 { return j.CreatedAt }

// DefaultJournalPrompts are offered until the user saves their own.
func DefaultJournalPrompts() []string {
	return []string{
		"What made today meaningful?",
		"What am I grateful for right now?",
		"What challenged me today, and what did I learn?",
		"What is one thing I want to do better tomorrow?",
	}
}
