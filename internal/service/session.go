package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"StudyHub/internal/validation"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecentSessionsLimit — сколько последних сессий отдаёт список.
const RecentSessionsLimit = 100

// CardOutcome — результат по одной карточке в сессии.
type CardOutcome struct {
	CardID    string `json:"card_id" validate:"required,uuid"`
	Correct   int    `json:"correct" validate:"min=0,max=1000"`
	Incorrect int    `json:"incorrect" validate:"min=0,max=1000"`
}

// SessionInput — итог прохода, присланный клиентом. Cards необязателен.
type SessionInput struct {
	Correct     int           `json:"correct" validate:"min=0,max=10000"`
	Incorrect   int           `json:"incorrect" validate:"min=0,max=10000"`
	DurationMin int           `json:"duration_min" validate:"min=0,max=1440"`
	CardCount   int           `json:"card_count" validate:"min=0,max=10000"`
	Cards       []CardOutcome `json:"cards,omitempty" validate:"max=2000,dive"`
}

// SessionList — последние сессии пользователя по предмету и суммы по всем.
type SessionList struct {
	Sessions []model.StudySession `json:"sessions"`
	Totals   repo.SessionTotals   `json:"totals"`
}

type SessionService struct {
	access      *AccessResolver
	sessions    repo.SessionRepository
	caps        repo.Capabilities
	invalidator ViewInvalidator
	validate    *validation.Validator
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewSessionService(
	access *AccessResolver,
	sessions repo.SessionRepository,
	caps repo.Capabilities,
	invalidator ViewInvalidator,
	logger *zap.SugaredLogger,
) *SessionService {
	return &SessionService{
		access:      access,
		sessions:    sessions,
		caps:        caps,
		invalidator: invalidator,
		validate:    validation.New(),
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Record сохраняет сессию и, если есть разбивка по карточкам, их счётчики.
// Без таблицы card_performances сессия всё равно пишется, а разбивка
// только проверяется и отбрасывается с предупреждением в логе.
func (s *SessionService) Record(ctx context.Context, subjectID string, userID int64, in SessionInput) (*model.StudySession, error) {
	if _, _, err := s.access.RequireParticipant(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := checkBreakdown(in); err != nil {
		return nil, err
	}

	session := &model.StudySession{
		ID:          uuid.NewString(),
		SubjectID:   subjectID,
		UserID:      userID,
		Correct:     in.Correct,
		Incorrect:   in.Incorrect,
		DurationMin: in.DurationMin,
		CardCount:   in.CardCount,
		StudiedAt:   s.now(),
	}
	deltas := make([]repo.CardDelta, 0, len(in.Cards))
	for _, c := range in.Cards {
		deltas = append(deltas, repo.CardDelta{CardID: c.CardID, Correct: c.Correct, Incorrect: c.Incorrect})
	}

	if len(deltas) > 0 && !s.caps.CardPerformance {
		s.logger.Warnw("card performance store unavailable, per-card results skipped",
			"subject_id", subjectID, "user_id", userID, "cards", len(deltas))
	}

	err := s.sessions.Record(ctx, session, deltas, s.caps.CardPerformance)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCardRefs) {
			return nil, apperr.Field("cards", "contains cards that do not belong to this subject")
		}
		return nil, apperr.Internal("failed to record session", fmt.Errorf("record session: %w", err))
	}

	s.logger.Infow("study session recorded",
		"subject_id", subjectID, "user_id", userID,
		"correct", session.Correct, "incorrect", session.Incorrect)
	s.invalidator.Invalidate(ctx, userID, subjectViews(subjectID)...)
	return session, nil
}

// checkBreakdown: суммы по карточкам равны общим суммам, карточки не повторяются.
func checkBreakdown(in SessionInput) error {
	if len(in.Cards) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in.Cards))
	var correct, incorrect int
	for i, c := range in.Cards {
		if _, dup := seen[c.CardID]; dup {
			return apperr.Field(fmt.Sprintf("cards[%d].card_id", i), "duplicate card in breakdown")
		}
		seen[c.CardID] = struct{}{}
		correct += c.Correct
		incorrect += c.Incorrect
	}
	if correct != in.Correct || incorrect != in.Incorrect {
		return apperr.Validation("card breakdown does not match session totals", map[string]string{
			"cards": fmt.Sprintf("sum is %d/%d, totals are %d/%d", correct, incorrect, in.Correct, in.Incorrect),
		})
	}
	return nil
}

// List — последние сессии пользователя по предмету.
func (s *SessionService) List(ctx context.Context, subjectID string, userID int64) (*SessionList, error) {
	if _, _, err := s.access.RequireRead(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListRecent(ctx, subjectID, userID, RecentSessionsLimit)
	if err != nil {
		return nil, apperr.Internal("failed to list sessions", err)
	}
	totals, err := s.sessions.Totals(ctx, subjectID, userID)
	if err != nil {
		return nil, apperr.Internal("failed to sum sessions", err)
	}
	return &SessionList{Sessions: sessions, Totals: totals}, nil
}
