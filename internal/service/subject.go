package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"StudyHub/internal/study"
	"StudyHub/internal/validation"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Сколько последних сессий и отметок показывать на странице предмета.
const detailRecentLimit = 20

type CardInput struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=500"`
	Answer string `json:"answer" validate:"required,min=1,max=500"`
}

type ItemInput struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// CreateSubjectInput — новый предмет. Для FLASHCARDS нужна хотя бы одна карточка,
// для CHECKLIST — хотя бы один пункт.
type CreateSubjectInput struct {
	Title       string            `json:"title" validate:"required,min=3,max=120"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=500"`
	StudyGoal   int               `json:"study_goal" validate:"min=0,max=1000"`
	Type        model.SubjectType `json:"type" validate:"required,oneof=FLASHCARDS CHECKLIST"`
	Cards       []CardInput       `json:"cards,omitempty" validate:"max=2000,dive"`
	Items       []ItemInput       `json:"items,omitempty" validate:"max=500,dive"`
}

// UpdateSubjectInput — частичное обновление; тип предмета не меняется.
type UpdateSubjectInput struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	StudyGoal   *int    `json:"study_goal,omitempty" validate:"omitempty,min=0,max=1000"`
}

// SubjectSummary — строка списка предметов.
type SubjectSummary struct {
	model.Subject
	Role      string `json:"role"`
	CardCount int64  `json:"card_count"`
	ItemCount int64  `json:"item_count"`
}

// SubjectDetail — страница предмета глазами конкретного пользователя.
type SubjectDetail struct {
	Subject  *model.Subject         `json:"subject"`
	Role     string                 `json:"role"`
	CanEdit  bool                   `json:"can_edit"`
	Sessions []model.StudySession   `json:"sessions"`
	Entries  []model.ChecklistEntry `json:"entries"`
}

// StudyDeck — карточки для прохода вместе с историей ответов пользователя.
type StudyDeck struct {
	SubjectID string       `json:"subject_id"`
	Title     string       `json:"title"`
	StudyGoal int          `json:"study_goal"`
	Cards     []study.Card `json:"cards"`
}

type SubjectService struct {
	access    *AccessResolver
	subjects  repo.SubjectRepository
	cards     repo.CardRepository
	checklist repo.ChecklistRepository
	sessions  repo.SessionRepository
	stats     repo.StatsRepository
	caps      repo.Capabilities
	validate  *validation.Validator
	logger    *zap.SugaredLogger
}

func NewSubjectService(
	access *AccessResolver,
	subjects repo.SubjectRepository,
	cards repo.CardRepository,
	checklist repo.ChecklistRepository,
	sessions repo.SessionRepository,
	stats repo.StatsRepository,
	caps repo.Capabilities,
	logger *zap.SugaredLogger,
) *SubjectService {
	return &SubjectService{
		access:    access,
		subjects:  subjects,
		cards:     cards,
		checklist: checklist,
		sessions:  sessions,
		stats:     stats,
		caps:      caps,
		validate:  validation.New(),
		logger:    logger,
	}
}

func (s *SubjectService) Create(ctx context.Context, userID int64, in CreateSubjectInput) (*model.Subject, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		StudyGoal:   in.StudyGoal,
		Type:        in.Type,
		OwnerID:     userID,
	}
	switch in.Type {
	case model.SubjectFlashcards:
		if len(in.Cards) == 0 {
			return nil, apperr.Field("cards", "add at least one card")
		}
		for _, c := range in.Cards {
			subject.Cards = append(subject.Cards, model.Card{ID: uuid.NewString(), Prompt: c.Prompt, Answer: c.Answer})
		}
	case model.SubjectChecklist:
		if len(in.Items) == 0 {
			return nil, apperr.Field("items", "add at least one item")
		}
		for i, it := range in.Items {
			subject.ChecklistItems = append(subject.ChecklistItems, model.ChecklistItem{
				ID:          uuid.NewString(),
				Title:       it.Title,
				Description: it.Description,
				Position:    i,
			})
		}
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, apperr.Internal("failed to create subject", err)
	}
	s.logger.Infow("subject created", "subject_id", subject.ID, "owner_id", userID, "type", subject.Type)
	return subject, nil
}

// List — предметы, к которым у пользователя есть доступ, с ролью и числом карточек/пунктов.
func (s *SubjectService) List(ctx context.Context, userID int64) ([]SubjectSummary, error) {
	subjects, err := s.subjects.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list subjects", err)
	}
	counts, err := s.stats.ChildCounts(ctx, subjectIDs(subjects))
	if err != nil {
		return nil, apperr.Internal("failed to count subject content", err)
	}

	out := make([]SubjectSummary, 0, len(subjects))
	for _, subj := range subjects {
		c := counts[subj.ID]
		out = append(out, SubjectSummary{
			Subject:   subj,
			Role:      roleOf(subj, userID).String(),
			CardCount: c.Cards,
			ItemCount: c.Items,
		})
	}
	return out, nil
}

func (s *SubjectService) Detail(ctx context.Context, userID int64, subjectID string) (*SubjectDetail, error) {
	access, _, err := s.access.RequireRead(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	subject, err := s.subjects.Detail(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("subject not found")
		}
		return nil, apperr.Internal("failed to load subject", err)
	}

	detail := &SubjectDetail{
		Subject:  subject,
		Role:     access.String(),
		CanEdit:  access.CanEdit(),
		Sessions: []model.StudySession{},
		Entries:  []model.ChecklistEntry{},
	}
	if subject.Type == model.SubjectFlashcards {
		detail.Sessions, err = s.sessions.ListRecent(ctx, subjectID, userID, detailRecentLimit)
	} else {
		detail.Entries, err = s.checklist.RecentEntries(ctx, subjectID, userID, detailRecentLimit)
	}
	if err != nil {
		return nil, apperr.Internal("failed to load recent activity", err)
	}
	return detail, nil
}

func (s *SubjectService) Update(ctx context.Context, userID int64, subjectID string, in UpdateSubjectInput) (*model.Subject, error) {
	subject, err := s.access.RequireOwner(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	if in.Title != nil {
		subject.Title = *in.Title
	}
	if in.Description != nil {
		subject.Description = in.Description
	}
	if in.StudyGoal != nil {
		subject.StudyGoal = *in.StudyGoal
	}
	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, apperr.Internal("failed to update subject", err)
	}
	return subject, nil
}

func (s *SubjectService) Delete(ctx context.Context, userID int64, subjectID string) error {
	if _, err := s.access.RequireOwner(ctx, userID, subjectID); err != nil {
		return err
	}
	if err := s.subjects.Delete(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("subject not found")
		}
		return apperr.Internal("failed to delete subject", err)
	}
	s.logger.Infow("subject deleted", "subject_id", subjectID, "owner_id", userID)
	return nil
}

// StudyDeck отдаёт карточки с накопленной статистикой пользователя.
// Без таблицы card_performances счётчики нулевые.
func (s *SubjectService) StudyDeck(ctx context.Context, userID int64, subjectID string) (*StudyDeck, error) {
	_, subject, err := s.access.RequireRead(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if subject.Type != model.SubjectFlashcards {
		return nil, apperr.Validation("only flashcard subjects can be studied", nil)
	}

	cards, err := s.cards.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, apperr.Internal("failed to load cards", err)
	}
	perf := map[string]model.CardPerformance{}
	if s.caps.CardPerformance {
		rows, err := s.stats.CardPerformance(ctx, subjectID, userID)
		if err != nil {
			return nil, apperr.Internal("failed to load card history", err)
		}
		for _, p := range rows {
			perf[p.CardID] = p
		}
	}

	deck := &StudyDeck{
		SubjectID: subject.ID,
		Title:     subject.Title,
		StudyGoal: subject.StudyGoal,
		Cards:     make([]study.Card, 0, len(cards)),
	}
	for _, c := range cards {
		p := perf[c.ID]
		deck.Cards = append(deck.Cards, study.Card{
			ID:        c.ID,
			Prompt:    c.Prompt,
			Answer:    c.Answer,
			Correct:   p.CorrectCount,
			Incorrect: p.IncorrectCount,
		})
	}
	return deck, nil
}

// roleOf — роль по уже загруженным Shares, без дополнительного запроса.
func roleOf(s model.Subject, userID int64) Access {
	if s.OwnerID == userID {
		return AccessOwner
	}
	for _, sh := range s.Shares {
		if sh.UserID != userID {
			continue
		}
		if sh.Role == model.RoleEditor {
			return AccessEditor
		}
		return AccessViewer
	}
	return AccessNone
}

func subjectIDs(subjects []model.Subject) []string {
	ids := make([]string, 0, len(subjects))
	for _, s := range subjects {
		ids = append(ids, s.ID)
	}
	return ids
}
