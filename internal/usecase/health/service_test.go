package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[ComponentIndex] != CheckOK {
		t.Errorf("expected index %q, got %q", CheckOK, r.Checks[ComponentIndex])
	}
	if r.Checks[ComponentSessions] != CheckOK {
		t.Errorf("expected sessions %q, got %q", CheckOK, r.Checks[ComponentSessions])
	}
}

func TestCheck_IndexNotReady(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("not ready")}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[ComponentIndex] != CheckError {
		t.Errorf("expected index %q, got %q", CheckError, r.Checks[ComponentIndex])
	}
}

func TestCheck_SessionStoreError(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("closed")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[ComponentSessions] != CheckError {
		t.Errorf("expected sessions %q, got %q", CheckError, r.Checks[ComponentSessions])
	}
}

func TestCheck_NoSessionStore(t *testing.T) {
	svc := New(&mockPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[ComponentSessions]; ok {
		t.Error("sessions check should be absent")
	}
}
