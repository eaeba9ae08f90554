package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Vipulgupta23/Virtual-Mic/internal/models"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionExists    = errors.New("session id already in use")
)

// Store holds all session and question state in process memory. Each
// collection has its own mutex; no operation ever needs both at once.
type Store struct {
	sessionsMu sync.RWMutex
	sessions   map[string]*models.Session

	questionsMu sync.RWMutex
	questions   map[int]*models.Question
	nextID      int
}

func NewStore() *Store {
	return &Store{
		sessions:  make(map[string]*models.Session),
		questions: make(map[int]*models.Question),
	}
}

// Session methods

// CreateSession inserts a new session keyed by id. The caller supplies the
// pre-generated id; the store does not mint session identifiers.
func (s *Store) CreateSession(id, hostName string, isActive bool) (*models.Session, error) {
	if id == "" {
		return nil, errors.New("session id is required")
	}
	if hostName == "" {
		return nil, errors.New("host name is required")
	}

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	if _, exists := s.sessions[id]; exists {
		return nil, ErrSessionExists
	}

	session := &models.Session{
		ID:               id,
		HostName:         hostName,
		IsActive:         isActive,
		ParticipantCount: 0,
		CreatedAt:        time.Now(),
	}
	s.sessions[id] = session

	copied := *session
	return &copied, nil
}

func (s *Store) GetSession(id string) (*models.Session, error) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// SessionExists reports whether a session with the given id is registered.
func (s *Store) SessionExists(id string) bool {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// SessionUpdate carries the fields of a partial session update. Nil fields
// are left untouched.
type SessionUpdate struct {
	HostName         *string
	IsActive         *bool
	ParticipantCount *int
}

func (s *Store) UpdateSession(id string, update SessionUpdate) (*models.Session, error) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if update.HostName != nil {
		session.HostName = *update.HostName
	}
	if update.IsActive != nil {
		session.IsActive = *update.IsActive
	}
	if update.ParticipantCount != nil {
		session.ParticipantCount = *update.ParticipantCount
	}

	copied := *session
	return &copied, nil
}

func (s *Store) ListSessions() []*models.Session {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	result := make([]*models.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		copied := *session
		result = append(result, &copied)
	}
	return result
}

// Question methods

// CreateQuestion assigns the next global question id and appends the
// question to the end of its session's queue: order is one past the current
// maximum order for that session, or 1 for the first question. The max scan
// and the insert run under one write lock so concurrent submissions for the
// same session cannot claim the same slot.
func (s *Store) CreateQuestion(sessionID, participantName, audioFilename string, duration int) (*models.Question, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	if audioFilename == "" {
		return nil, errors.New("audio filename is required")
	}
	if duration < 0 {
		return nil, errors.New("duration must not be negative")
	}
	if participantName == "" {
		participantName = models.AnonymousName
	}

	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()

	maxOrder := 0
	for _, q := range s.questions {
		if q.SessionID == sessionID && q.Order > maxOrder {
			maxOrder = q.Order
		}
	}

	s.nextID++
	question := &models.Question{
		ID:              s.nextID,
		SessionID:       sessionID,
		ParticipantName: participantName,
		AudioFilename:   audioFilename,
		Duration:        duration,
		Status:          models.StatusQueued,
		Order:           maxOrder + 1,
		CreatedAt:       time.Now(),
	}
	s.questions[question.ID] = question

	copied := *question
	return &copied, nil
}

func (s *Store) GetQuestion(id int) (*models.Question, error) {
	s.questionsMu.RLock()
	defer s.questionsMu.RUnlock()

	question, ok := s.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	copied := *question
	return &copied, nil
}

// ListBySession returns the session's queue sorted by order ascending, with
// equal orders broken by id ascending so the result is deterministic.
func (s *Store) ListBySession(sessionID string) []*models.Question {
	s.questionsMu.RLock()
	defer s.questionsMu.RUnlock()

	result := make([]*models.Question, 0)
	for _, question := range s.questions {
		if question.SessionID == sessionID {
			copied := *question
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// QuestionUpdate carries the fields of a partial question update. Nil fields
// are left untouched. Status values are not validated here and no transition
// graph is enforced.
type QuestionUpdate struct {
	ParticipantName *string
	Status          *string
	Order           *int
}

func (s *Store) UpdateQuestion(id int, update QuestionUpdate) (*models.Question, error) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()

	question, ok := s.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}

	if update.ParticipantName != nil {
		question.ParticipantName = *update.ParticipantName
	}
	if update.Status != nil {
		question.Status = *update.Status
	}
	if update.Order != nil {
		question.Order = *update.Order
	}

	copied := *question
	return &copied, nil
}

// DeleteQuestion removes the question if present. Deleting an id that does
// not exist is not an error.
func (s *Store) DeleteQuestion(id int) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()
	delete(s.questions, id)
}

// OrderUpdate is one entry of a bulk reorder.
type OrderUpdate struct {
	ID    int `json:"id" binding:"required"`
	Order int `json:"order"`
}

// UpdateOrder overwrites the order of each referenced question, provided the
// question exists and belongs to sessionID. Entries that fail either check
// are skipped silently; each entry applies independently.
func (s *Store) UpdateOrder(sessionID string, updates []OrderUpdate) {
	s.questionsMu.Lock()
	defer s.questionsMu.Unlock()

	for _, u := range updates {
		question, ok := s.questions[u.ID]
		if !ok || question.SessionID != sessionID {
			continue
		}
		question.Order = u.Order
	}
}

func (s *Store) QuestionCount() int {
	s.questionsMu.RLock()
	defer s.questionsMu.RUnlock()
	return len(s.questions)
}
