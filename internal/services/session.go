package services

import (
	"fmt"

	"github.com/Vipulgupta23/Virtual-Mic/internal/idgen"
	"github.com/Vipulgupta23/Virtual-Mic/internal/models"
	"github.com/Vipulgupta23/Virtual-Mic/internal/store"
)

type SessionService struct {
	store   *store.Store
	baseURL string
}

func NewSessionService(st *store.Store, baseURL string) *SessionService {
	return &SessionService{store: st, baseURL: baseURL}
}

// CreateSession mints a unique session token and registers the session.
// Sessions start active unless the host explicitly creates them paused.
func (s *SessionService) CreateSession(hostName string, isActive bool) (*models.Session, error) {
	id, err := idgen.UniqueToken(s.store.SessionExists)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	return s.store.CreateSession(id, hostName, isActive)
}

func (s *SessionService) GetSession(id string) (*models.Session, error) {
	return s.store.GetSession(id)
}

func (s *SessionService) UpdateSession(id string, update store.SessionUpdate) (*models.Session, error) {
	return s.store.UpdateSession(id, update)
}

func (s *SessionService) ListSessions() []*models.Session {
	return s.store.ListSessions()
}

// JoinInfo builds the public link a participant opens (typically via a QR
// code rendered client-side) to submit questions to the session.
func (s *SessionService) JoinInfo(id string) (*JoinInfo, error) {
	session, err := s.store.GetSession(id)
	if err != nil {
		return nil, err
	}
	return &JoinInfo{
		SessionID: session.ID,
		HostName:  session.HostName,
		IsActive:  session.IsActive,
		JoinURL:   fmt.Sprintf("%s/join/%s", s.baseURL, session.ID),
	}, nil
}

type JoinInfo struct {
	SessionID string `json:"session_id"`
	HostName  string `json:"host_name"`
	IsActive  bool   `json:"is_active"`
	JoinURL   string `json:"join_url"`
}
