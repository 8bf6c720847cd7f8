package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/storyforge/storyforge/internal/log"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(log.NewNop())
}

func TestStoreLifecycle(t *testing.T) {
	s := newTestStore(t)

	sess := s.Create()
	if sess.Canvas == nil {
		t.Fatal("session created without canvas")
	}
	if s.Count() != 1 {
		t.Errorf("count = %d", s.Count())
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != sess {
		t.Error("Get returned a different session")
	}

	if _, err := s.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id err = %v, want ErrNotFound", err)
	}

	if err := s.Delete(sess.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
	if s.Count() != 0 {
		t.Errorf("count after delete = %d", s.Count())
	}
}

func TestStoreIsolation(t *testing.T) {
	s := newTestStore(t)
	a := s.Create()
	b := s.Create()

	a.Canvas.SetTitle("session a")
	if b.Canvas.Title != "" {
		t.Error("canvas leaked between sessions")
	}
}

func TestAcquireSerializesTurns(t *testing.T) {
	s := newTestStore(t)
	sess := s.Create()

	const turns = 50
	var wg sync.WaitGroup
	counter := 0

	for range turns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, release, err := s.Acquire(sess.ID)
			if err != nil {
				t.Error(err)
				return
			}
			defer release()
			// Unsynchronized increment; the turn lock is the only guard.
			counter++
			got.Canvas.SetTitle("turn")
		}()
	}
	wg.Wait()

	if counter != turns {
		t.Errorf("counter = %d, want %d (turns overlapped)", counter, turns)
	}
}

func TestAcquireUnknownSession(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.Acquire(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPendingCallAccessors(t *testing.T) {
	p := &PendingCall{
		Tool: "generateStoryAndConfirm",
		Input: map[string]any{
			"story":       "a tale",
			"title":       "t",
			"description": "d",
		},
	}
	story, title, description := p.StoryArgs()
	if story != "a tale" || title != "t" || description != "d" {
		t.Errorf("StoryArgs = %q %q %q", story, title, description)
	}

	p = &PendingCall{
		Tool:  "selectAngle",
		Input: map[string]any{"angles": []any{"Hope", "Betrayal", 7}},
	}
	angles := p.Angles()
	if len(angles) != 2 || angles[0] != "Hope" || angles[1] != "Betrayal" {
		t.Errorf("Angles = %v", angles)
	}
}
