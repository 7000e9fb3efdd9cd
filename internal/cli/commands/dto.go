package commands

import (
	"StudyHub/internal/study"
	"time"
)

// Ответы сервера в том объёме, который нужен CLI.

type subjectDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Type        string    `json:"type"`
	StudyGoal   int       `json:"study_goal"`
	Role        string    `json:"role"`
	CardCount   int64     `json:"card_count"`
	ItemCount   int64     `json:"item_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       *struct {
		Username string `json:"username"`
	} `json:"owner"`
	Cards []struct {
		ID     string `json:"id"`
		Prompt string `json:"prompt"`
		Answer string `json:"answer"`
	} `json:"cards"`
	Items []itemDTO `json:"checklist_items"`
}

type itemDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type subjectDetailDTO struct {
	Subject  subjectDTO `json:"subject"`
	Role     string     `json:"role"`
	CanEdit  bool       `json:"can_edit"`
	Sessions []struct {
		Correct     int       `json:"correct"`
		Incorrect   int       `json:"incorrect"`
		DurationMin int       `json:"duration_min"`
		StudiedAt   time.Time `json:"studied_at"`
	} `json:"sessions"`
	Entries []struct {
		ItemID      string    `json:"item_id"`
		PracticedAt time.Time `json:"practiced_at"`
	} `json:"entries"`
}

type studyDeckDTO struct {
	SubjectID string       `json:"subject_id"`
	Title     string       `json:"title"`
	StudyGoal int          `json:"study_goal"`
	Cards     []study.Card `json:"cards"`
}

type dashboardDTO struct {
	Subjects []struct {
		subjectDTO
		SessionCount int64 `json:"session_count"`
		Flashcards   *struct {
			TotalAttempts int64 `json:"total_attempts"`
			Accuracy      int   `json:"accuracy"`
		} `json:"flashcards"`
		Checklist *struct {
			TotalPractices  int64      `json:"total_practices"`
			LastPracticedAt *time.Time `json:"last_practiced_at"`
		} `json:"checklist"`
	} `json:"subjects"`
	Totals struct {
		Correct     int64 `json:"correct"`
		Incorrect   int64 `json:"incorrect"`
		DurationMin int64 `json:"duration_min"`
		Sessions    int64 `json:"sessions"`
	} `json:"totals"`
}

type itemFrequencyDTO struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

type overviewDTO struct {
	Months      []string `json:"months"`
	PracticeMix []struct {
		Label string `json:"label"`
		Value int64  `json:"value"`
	} `json:"practice_mix"`
	HasMixData bool `json:"has_mix_data"`
	Histogram  []struct {
		Label string  `json:"label"`
		Data  []int64 `json:"data"`
	} `json:"histogram"`
	HasHistogramData    bool `json:"has_histogram_data"`
	ChecklistHighlights []struct {
		SubjectTitle  string            `json:"subject_title"`
		TotalItems    int               `json:"total_items"`
		MostFrequent  *itemFrequencyDTO `json:"most_frequent"`
		LeastFrequent *itemFrequencyDTO `json:"least_frequent"`
	} `json:"checklist_highlights"`
	FlashcardHighlights []struct {
		SubjectTitle string `json:"subject_title"`
		Cards        []struct {
			Prompt    string `json:"prompt"`
			Correct   int    `json:"correct"`
			Incorrect int    `json:"incorrect"`
		} `json:"cards"`
	} `json:"flashcard_highlights"`
	CardStatsAvailable bool `json:"card_stats_available"`
}
