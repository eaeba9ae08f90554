package services

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/Vipulgupta23/Virtual-Mic/internal/media"
	"github.com/Vipulgupta23/Virtual-Mic/internal/models"
	"github.com/Vipulgupta23/Virtual-Mic/internal/store"
)

func newTestServices(t *testing.T) (*SessionService, *QuestionService, *media.Store) {
	t.Helper()

	mediaStore, err := media.NewStore(t.TempDir(), 1024*1024)
	if err != nil {
		t.Fatalf("create media store: %v", err)
	}
	st := store.NewStore()
	return NewSessionService(st, "http://localhost:8080"), NewQuestionService(st, mediaStore), mediaStore
}

func audioUpload(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename="%s"`, "clip.webm"))
	header.Set("Content-Type", "audio/webm")

	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["audio"][0]
}

func TestSubmitQuestionBumpsParticipantCount(t *testing.T) {
	sessions, questions, _ := newTestServices(t)

	session, err := sessions.CreateSession("Dr. A", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 3; i++ {
		question, err := questions.SubmitQuestion(session.ID, "", 5, audioUpload(t, []byte("clip")))
		if err != nil {
			t.Fatalf("unexpected error on submission %d: %v", i, err)
		}
		if question.Order != i {
			t.Errorf("expected order %d, got %d", i, question.Order)
		}

		refreshed, _ := sessions.GetSession(session.ID)
		if refreshed.ParticipantCount != i {
			t.Errorf("expected participant count %d, got %d", i, refreshed.ParticipantCount)
		}
	}
}

func TestSubmitQuestionEndedSession(t *testing.T) {
	sessions, questions, _ := newTestServices(t)

	session, _ := sessions.CreateSession("Dr. A", true)
	inactive := false
	if _, err := sessions.UpdateSession(session.ID, store.SessionUpdate{IsActive: &inactive}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := questions.SubmitQuestion(session.ID, "", 5, audioUpload(t, []byte("clip"))); err == nil {
		t.Error("expected submission to an ended session to fail")
	}
}

func TestSubmitQuestionUnknownSession(t *testing.T) {
	_, questions, _ := newTestServices(t)

	_, err := questions.SubmitQuestion("missing", "", 5, audioUpload(t, []byte("clip")))
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdateQuestionStatusValidation(t *testing.T) {
	sessions, questions, _ := newTestServices(t)

	session, _ := sessions.CreateSession("Dr. A", true)
	question, err := questions.SubmitQuestion(session.ID, "Priya", 5, audioUpload(t, []byte("clip")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bogus := "paused"
	if _, err := questions.UpdateQuestion(question.ID, store.QuestionUpdate{Status: &bogus}); err == nil {
		t.Error("expected unknown status to be rejected")
	}

	// Any known status can replace any other, including backwards moves.
	for _, status := range []string{models.StatusPlaying, models.StatusPlayed, models.StatusSkipped, models.StatusQueued} {
		s := status
		updated, err := questions.UpdateQuestion(question.ID, store.QuestionUpdate{Status: &s})
		if err != nil {
			t.Fatalf("unexpected error setting status %s: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("expected status %s, got %s", status, updated.Status)
		}
	}
}

func TestDeleteQuestionRemovesBlob(t *testing.T) {
	sessions, questions, mediaStore := newTestServices(t)

	session, _ := sessions.CreateSession("Dr. A", true)
	question, err := questions.SubmitQuestion(session.ID, "", 5, audioUpload(t, []byte("clip")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := questions.DeleteQuestion(question.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := questions.GetQuestion(question.ID); !errors.Is(err, store.ErrQuestionNotFound) {
		t.Errorf("expected question gone, got %v", err)
	}
	if _, err := mediaStore.Path(question.AudioFilename); !errors.Is(err, media.ErrBlobNotFound) {
		t.Errorf("expected blob gone, got %v", err)
	}

	// Second delete of the same id still succeeds.
	if err := questions.DeleteQuestion(question.ID); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestReorderUnknownSession(t *testing.T) {
	_, questions, _ := newTestServices(t)

	err := questions.Reorder("missing", []store.OrderUpdate{{ID: 1, Order: 0}})
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestJoinInfo(t *testing.T) {
	sessions, _, _ := newTestServices(t)

	session, _ := sessions.CreateSession("Dr. A", true)
	info, err := sessions.JoinInfo(session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "http://localhost:8080/join/" + session.ID
	if info.JoinURL != expected {
		t.Errorf("expected join url %s, got %s", expected, info.JoinURL)
	}
	if info.HostName != "Dr. A" {
		t.Errorf("expected host name Dr. A, got %s", info.HostName)
	}
}
