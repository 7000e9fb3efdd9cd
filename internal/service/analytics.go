package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	// historyMonths — длина окна аналитики, включая текущий месяц.
	historyMonths = 12
	// missedCardsLimit — сколько проблемных карточек показывать на предмет.
	missedCardsLimit = 20
)

// MixSlice — доля предмета в общей практике за окно.
// Для колод считаются попытки (correct+incorrect), для чек-листов — отметки.
type MixSlice struct {
	SubjectID string `json:"subject_id"`
	Label     string `json:"label"`
	Value     int64  `json:"value"`
}

// HistogramSeries — помесячная активность по предмету, старые месяцы первыми.
type HistogramSeries struct {
	SubjectID string  `json:"subject_id"`
	Label     string  `json:"label"`
	Data      []int64 `json:"data"`
}

type ItemFrequency struct {
	ItemID string `json:"item_id"`
	Title  string `json:"title"`
	Count  int    `json:"count"`
}

// ChecklistHighlight — самый частый и самый редкий пункт за окно.
// При равенстве побеждает пункт, стоящий раньше по position.
type ChecklistHighlight struct {
	SubjectID     string         `json:"subject_id"`
	SubjectTitle  string         `json:"subject_title"`
	TotalItems    int            `json:"total_items"`
	MostFrequent  *ItemFrequency `json:"most_frequent"`
	LeastFrequent *ItemFrequency `json:"least_frequent"`
}

type MissedCardView struct {
	CardID    string `json:"card_id"`
	Prompt    string `json:"prompt"`
	Answer    string `json:"answer"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// FlashcardHighlight — карточки с наибольшим числом ошибок пользователя.
type FlashcardHighlight struct {
	SubjectID    string           `json:"subject_id"`
	SubjectTitle string           `json:"subject_title"`
	Cards        []MissedCardView `json:"cards"`
}

type Overview struct {
	Months              []string             `json:"months"`
	PracticeMix         []MixSlice           `json:"practice_mix"`
	HasMixData          bool                 `json:"has_mix_data"`
	Histogram           []HistogramSeries    `json:"histogram"`
	HasHistogramData    bool                 `json:"has_histogram_data"`
	ChecklistHighlights []ChecklistHighlight `json:"checklist_highlights"`
	FlashcardHighlights []FlashcardHighlight `json:"flashcard_highlights"`
	CardStatsAvailable  bool                 `json:"card_stats_available"`
}

type FlashcardProgress struct {
	TotalAttempts int64 `json:"total_attempts"`
	Accuracy      int   `json:"accuracy"`
}

type ChecklistProgress struct {
	TotalPractices  int64      `json:"total_practices"`
	LastPracticedAt *time.Time `json:"last_practiced_at"`
}

// SubjectProgress — карточка предмета на дашборде.
type SubjectProgress struct {
	SubjectSummary
	SessionCount int64              `json:"session_count"`
	Flashcards   *FlashcardProgress `json:"flashcards,omitempty"`
	Checklist    *ChecklistProgress `json:"checklist,omitempty"`
}

type Dashboard struct {
	Subjects []SubjectProgress `json:"subjects"`
	Totals   repo.UserTotals   `json:"totals"`
}

// AnalyticsService считает агрегаты по активности пользователя в доступных ему предметах.
type AnalyticsService struct {
	subjects repo.SubjectRepository
	stats    repo.StatsRepository
	caps     repo.Capabilities
	logger   *zap.SugaredLogger
}

func NewAnalyticsService(subjects repo.SubjectRepository, stats repo.StatsRepository, caps repo.Capabilities, logger *zap.SugaredLogger) *AnalyticsService {
	return &AnalyticsService{subjects: subjects, stats: stats, caps: caps, logger: logger}
}

// Overview — аналитика за 12 месяцев, заканчивая месяцем now (UTC).
func (s *AnalyticsService) Overview(ctx context.Context, userID int64, now time.Time) (*Overview, error) {
	subjects, err := s.subjects.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list subjects", err)
	}
	start := windowStart(now)
	flashIDs, checklistIDs := splitByType(subjects)

	sessions, err := s.stats.SessionsSince(ctx, userID, flashIDs, start)
	if err != nil {
		return nil, apperr.Internal("failed to load sessions", err)
	}
	entries, err := s.stats.EntriesSince(ctx, userID, checklistIDs, start)
	if err != nil {
		return nil, apperr.Internal("failed to load checklist entries", err)
	}
	items, err := s.stats.ItemsForSubjects(ctx, checklistIDs)
	if err != nil {
		return nil, apperr.Internal("failed to load checklist items", err)
	}

	var missed []repo.MissedCard
	if s.caps.CardPerformance {
		missed, err = s.stats.MissedCards(ctx, userID, flashIDs)
		if err != nil {
			return nil, apperr.Internal("failed to load missed cards", err)
		}
	}

	ov := buildOverview(subjects, sessions, entries, items, missed, now)
	ov.CardStatsAvailable = s.caps.CardPerformance
	return ov, nil
}

// Dashboard — прогресс по каждому доступному предмету и общие суммы пользователя.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	subjects, err := s.subjects.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list subjects", err)
	}
	ids := subjectIDs(subjects)

	counts, err := s.stats.ChildCounts(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("failed to count subject content", err)
	}
	sessionStats, err := s.stats.SessionStatsBySubject(ctx, userID, ids)
	if err != nil {
		return nil, apperr.Internal("failed to aggregate sessions", err)
	}
	entryCounts, err := s.stats.EntryCountsBySubject(ctx, userID, ids)
	if err != nil {
		return nil, apperr.Internal("failed to aggregate checklist entries", err)
	}
	totals, err := s.stats.UserTotals(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to sum sessions", err)
	}

	out := &Dashboard{Subjects: make([]SubjectProgress, 0, len(subjects)), Totals: totals}
	for _, subj := range subjects {
		c := counts[subj.ID]
		st := sessionStats[subj.ID]
		p := SubjectProgress{
			SubjectSummary: SubjectSummary{
				Subject:   subj,
				Role:      roleOf(subj, userID).String(),
				CardCount: c.Cards,
				ItemCount: c.Items,
			},
			SessionCount: st.Sessions,
		}
		if subj.Type == model.SubjectFlashcards {
			attempts := st.Correct + st.Incorrect
			p.Flashcards = &FlashcardProgress{TotalAttempts: attempts, Accuracy: accuracy(st.Correct, attempts)}
		} else {
			last, err := s.stats.LastPracticedAt(ctx, userID, subj.ID)
			if err != nil {
				return nil, apperr.Internal("failed to load last practice", err)
			}
			p.Checklist = &ChecklistProgress{TotalPractices: entryCounts[subj.ID], LastPracticedAt: last}
		}
		out.Subjects = append(out.Subjects, p)
	}
	return out, nil
}

// accuracy — доля верных ответов в процентах, округлённая до целого.
func accuracy(correct, attempts int64) int {
	if attempts == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(attempts) * 100))
}

// windowStart — первое число месяца за 11 месяцев до месяца now.
func windowStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-(historyMonths-1), 1, 0, 0, 0, 0, time.UTC)
}

// monthLabels — подписи месяцев окна, старые первыми: "Jan 2006".
func monthLabels(now time.Time) []string {
	start := windowStart(now)
	out := make([]string, historyMonths)
	for i := range out {
		out[i] = start.AddDate(0, i, 0).Format("Jan 2006")
	}
	return out
}

// monthIndex — номер месяца t в окне или -1, если t вне окна.
func monthIndex(start, t time.Time) int {
	t = t.UTC()
	idx := (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
	if idx < 0 || idx >= historyMonths {
		return -1
	}
	return idx
}

func splitByType(subjects []model.Subject) (flash, checklist []string) {
	for _, s := range subjects {
		if s.Type == model.SubjectFlashcards {
			flash = append(flash, s.ID)
		} else {
			checklist = append(checklist, s.ID)
		}
	}
	return flash, checklist
}

// buildOverview собирает аналитику из уже загруженных строк. Без I/O.
func buildOverview(
	subjects []model.Subject,
	sessions []model.StudySession,
	entries []model.ChecklistEntry,
	items []model.ChecklistItem,
	missed []repo.MissedCard,
	now time.Time,
) *Overview {
	start := windowStart(now)
	ov := &Overview{
		Months:              monthLabels(now),
		PracticeMix:         make([]MixSlice, 0, len(subjects)),
		Histogram:           make([]HistogramSeries, 0, len(subjects)),
		ChecklistHighlights: []ChecklistHighlight{},
		FlashcardHighlights: []FlashcardHighlight{},
	}

	series := make(map[string][]int64, len(subjects))
	for _, s := range subjects {
		series[s.ID] = make([]int64, historyMonths)
	}
	for _, sess := range sessions {
		data, ok := series[sess.SubjectID]
		if !ok {
			continue
		}
		if i := monthIndex(start, sess.StudiedAt); i >= 0 {
			data[i] += int64(sess.Correct + sess.Incorrect)
		}
	}
	itemHits := map[string]int{}
	for _, e := range entries {
		data, ok := series[e.SubjectID]
		if !ok {
			continue
		}
		if i := monthIndex(start, e.PracticedAt); i >= 0 {
			data[i]++
			itemHits[e.ItemID]++
		}
	}

	for _, s := range subjects {
		data := series[s.ID]
		var total int64
		for _, v := range data {
			total += v
		}
		ov.PracticeMix = append(ov.PracticeMix, MixSlice{SubjectID: s.ID, Label: s.Title, Value: total})
		ov.Histogram = append(ov.Histogram, HistogramSeries{SubjectID: s.ID, Label: s.Title, Data: data})
		if total > 0 {
			ov.HasMixData = true
			ov.HasHistogramData = true
		}
	}

	itemsBySubject := map[string][]model.ChecklistItem{}
	for _, it := range items {
		itemsBySubject[it.SubjectID] = append(itemsBySubject[it.SubjectID], it)
	}
	missedBySubject := map[string][]MissedCardView{}
	for _, m := range missed {
		if len(missedBySubject[m.SubjectID]) >= missedCardsLimit || m.Incorrect <= 0 {
			continue
		}
		missedBySubject[m.SubjectID] = append(missedBySubject[m.SubjectID], MissedCardView{
			CardID:    m.CardID,
			Prompt:    m.Prompt,
			Answer:    m.Answer,
			Correct:   m.Correct,
			Incorrect: m.Incorrect,
		})
	}

	for _, s := range subjects {
		switch s.Type {
		case model.SubjectChecklist:
			ov.ChecklistHighlights = append(ov.ChecklistHighlights, checklistHighlight(s, itemsBySubject[s.ID], itemHits))
		case model.SubjectFlashcards:
			if cards := missedBySubject[s.ID]; len(cards) > 0 {
				ov.FlashcardHighlights = append(ov.FlashcardHighlights, FlashcardHighlight{
					SubjectID:    s.ID,
					SubjectTitle: s.Title,
					Cards:        cards,
				})
			}
		}
	}
	return ov
}

// checklistHighlight ожидает items, отсортированные по position.
func checklistHighlight(s model.Subject, items []model.ChecklistItem, hits map[string]int) ChecklistHighlight {
	h := ChecklistHighlight{SubjectID: s.ID, SubjectTitle: s.Title, TotalItems: len(items)}
	for _, it := range items {
		f := &ItemFrequency{ItemID: it.ID, Title: it.Title, Count: hits[it.ID]}
		if h.MostFrequent == nil || f.Count > h.MostFrequent.Count {
			h.MostFrequent = f
		}
		if h.LeastFrequent == nil || f.Count < h.LeastFrequent.Count {
			h.LeastFrequent = f
		}
	}
	return h
}
