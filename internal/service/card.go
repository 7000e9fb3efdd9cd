package service

import (
	"StudyHub/internal/apperr"
	"StudyHub/internal/model"
	"StudyHub/internal/repo"
	"StudyHub/internal/validation"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CardService — правка карточек. Доступна владельцу и EDITOR.
type CardService struct {
	access   *AccessResolver
	cards    repo.CardRepository
	validate *validation.Validator
	logger   *zap.SugaredLogger
}

func NewCardService(access *AccessResolver, cards repo.CardRepository, logger *zap.SugaredLogger) *CardService {
	return &CardService{access: access, cards: cards, validate: validation.New(), logger: logger}
}

func (s *CardService) Add(ctx context.Context, userID int64, subjectID string, in CardInput) (*model.Card, error) {
	_, subject, err := s.access.RequireEditor(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if subject.Type != model.SubjectFlashcards {
		return nil, apperr.Validation("cards can only be added to flashcard subjects", nil)
	}

	card := &model.Card{ID: uuid.NewString(), SubjectID: subjectID, Prompt: in.Prompt, Answer: in.Answer}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, apperr.Internal("failed to create card", err)
	}
	return card, nil
}

func (s *CardService) Update(ctx context.Context, userID int64, subjectID, cardID string, in CardInput) (*model.Card, error) {
	if _, _, err := s.access.RequireEditor(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	card, err := s.cards.GetInSubject(ctx, subjectID, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("card not found")
		}
		return nil, apperr.Internal("failed to load card", err)
	}

	card.Prompt = in.Prompt
	card.Answer = in.Answer
	if err := s.cards.Update(ctx, card); err != nil {
		return nil, apperr.Internal("failed to update card", err)
	}
	return card, nil
}

func (s *CardService) Delete(ctx context.Context, userID int64, subjectID, cardID string) error {
	if _, _, err := s.access.RequireEditor(ctx, userID, subjectID); err != nil {
		return err
	}
	ok, err := s.cards.Delete(ctx, subjectID, cardID)
	if err != nil {
		return apperr.Internal("failed to delete card", err)
	}
	if !ok {
		return apperr.NotFound("card not found")
	}
	s.logger.Infow("card deleted", "subject_id", subjectID, "card_id", cardID, "user_id", userID)
	return nil
}
