package models

import "time"

// Flashcard is one study card: a photo plus the name of the thing on it.
// JSON field names match the persisted deck format.
type Flashcard struct {
	ImageSrc string `json:"imageSrc"`
	Name     string `json:"name"`
}

// HistoryRecord is one answer attempt. Flashcard is a value snapshot of the
// card that was active when the answer was recorded.
type HistoryRecord struct {
	Flashcard Flashcard `json:"flashcard"`
	IsCorrect bool      `json:"isCorrect"`
	Timestamp int64     `json:"timestamp"` // epoch millis
}

// DeckConfig is the remote deck description fetched from the photo base URL.
type DeckConfig struct {
	ItemNames []string `json:"itemNames"`
}

// Answer is one row of the persistent answers log.
type Answer struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ImageSrc   string    `json:"image_src"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

type AnswerFilter struct {
	Name     string
	Correct  *bool
	Since    time.Time
	Limit    int
	OrderDir string
}

type AnswerStats struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}
