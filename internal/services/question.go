package services

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/Vipulgupta23/Virtual-Mic/internal/media"
	"github.com/Vipulgupta23/Virtual-Mic/internal/models"
	"github.com/Vipulgupta23/Virtual-Mic/internal/store"
)

type QuestionService struct {
	store *store.Store
	media *media.Store
}

func NewQuestionService(st *store.Store, mediaStore *media.Store) *QuestionService {
	return &QuestionService{store: st, media: mediaStore}
}

// SubmitQuestion stores the uploaded clip, appends the question to the
// session's queue and bumps the session's participant counter. The counter
// update is a separate get-then-update pair; losing one increment if the
// process dies in between is acceptable, the counter is informational.
func (s *QuestionService) SubmitQuestion(sessionID, participantName string, duration int, audio *multipart.FileHeader) (*models.Question, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, errors.New("session has ended and is not accepting questions")
	}

	filename, err := s.media.Save(audio)
	if err != nil {
		return nil, err
	}

	question, err := s.store.CreateQuestion(sessionID, participantName, filename, duration)
	if err != nil {
		if cleanupErr := s.media.Delete(filename); cleanupErr != nil {
			slog.Warn("orphaned audio blob after failed create", "filename", filename, "error", cleanupErr)
		}
		return nil, err
	}

	count := session.ParticipantCount + 1
	if _, err := s.store.UpdateSession(sessionID, store.SessionUpdate{ParticipantCount: &count}); err != nil {
		slog.Warn("participant count update failed", "session", sessionID, "error", err)
	}

	return question, nil
}

func (s *QuestionService) GetQuestion(id int) (*models.Question, error) {
	return s.store.GetQuestion(id)
}

// ListQueue returns the session's questions in playback order.
func (s *QuestionService) ListQueue(sessionID string) ([]*models.Question, error) {
	if !s.store.SessionExists(sessionID) {
		return nil, store.ErrSessionNotFound
	}
	return s.store.ListBySession(sessionID), nil
}

// UpdateQuestion applies a partial update. Unknown status strings are
// rejected here so typos never enter the registry; transitions between the
// known statuses are deliberately unrestricted.
func (s *QuestionService) UpdateQuestion(id int, update store.QuestionUpdate) (*models.Question, error) {
	if update.Status != nil && !models.ValidStatus(*update.Status) {
		return nil, fmt.Errorf("unknown status %q", *update.Status)
	}
	return s.store.UpdateQuestion(id, update)
}

// Reorder bulk-applies new order values, e.g. after a drag-to-reorder on
// the host screen. Entries for other sessions or missing ids are skipped.
func (s *QuestionService) Reorder(sessionID string, updates []store.OrderUpdate) error {
	if !s.store.SessionExists(sessionID) {
		return store.ErrSessionNotFound
	}
	s.store.UpdateOrder(sessionID, updates)
	return nil
}

// DeleteQuestion removes the record and then its audio blob, best effort.
// A blob left behind by a failed delete is harmless and only logged.
// Deleting an id that no longer exists succeeds.
func (s *QuestionService) DeleteQuestion(id int) error {
	question, err := s.store.GetQuestion(id)
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return nil
		}
		return err
	}

	s.store.DeleteQuestion(id)

	if err := s.media.Delete(question.AudioFilename); err != nil {
		slog.Warn("audio blob delete failed", "filename", question.AudioFilename, "error", err)
	}
	return nil
}

// AudioPath resolves a stored audio filename for serving.
func (s *QuestionService) AudioPath(filename string) (string, error) {
	return s.media.Path(filename)
}
