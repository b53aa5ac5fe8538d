package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// fakeDirectory is a scripted UserDirectory.
type fakeDirectory struct {
	users      []models.User
	passwordOK bool
	findErr    error
	recordErr  error

	findCalls, checkCalls, recordCalls int
}

func (d *fakeDirectory) List(context.Context) ([]models.User, error) { return d.users, nil }

func (d *fakeDirectory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	d.findCalls++
	if d.findErr != nil {
		return nil, d.findErr
	}
	for _, u := range d.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) CheckPassword(*models.User, string) bool {
	d.checkCalls++
	return d.passwordOK
}

func (d *fakeDirectory) RecordLogin(context.Context, uuid.UUID) error {
	d.recordCalls++
	return d.recordErr
}

func adminUser() models.User {
	return models.User{ID: uuid.New(), Email: "admin@example.org", DisplayName: "Admin"}
}

func TestLoginReturnsUser(t *testing.T) {
	u := adminUser()
	d := &fakeDirectory{users: []models.User{u}, passwordOK: true}
	svc := NewAdminUserService(d)

	got, err := svc.Login(context.Background(), "admin@example.org", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID = %s, want %s", got.ID, u.ID)
	}
	if d.checkCalls != 1 || d.recordCalls != 1 {
		t.Errorf("check=%d record=%d, want 1 each", d.checkCalls, d.recordCalls)
	}
}

func TestLoginPasswordMismatch(t *testing.T) {
	d := &fakeDirectory{users: []models.User{adminUser()}, passwordOK: false}
	svc := NewAdminUserService(d)

	_, err := svc.Login(context.Background(), "admin@example.org", "secret")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if d.recordCalls != 0 {
		t.Errorf("RecordLogin called %d times, want 0", d.recordCalls)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	d := &fakeDirectory{}
	svc := NewAdminUserService(d)

	_, err := svc.Login(context.Background(), "admin@example.org", "secret")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if d.checkCalls != 0 {
		t.Errorf("CheckPassword called %d times, want 0", d.checkCalls)
	}
}

func TestLoginLookupError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewAdminUserService(&fakeDirectory{findErr: boom})

	if _, err := svc.Login(context.Background(), "admin@example.org", "x"); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestLoginRecordFailureStillSucceeds(t *testing.T) {
	d := &fakeDirectory{users: []models.User{adminUser()}, passwordOK: true, recordErr: errors.New("timeout")}
	svc := NewAdminUserService(d)

	if _, err := svc.Login(context.Background(), "admin@example.org", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestAll(t *testing.T) {
	d := &fakeDirectory{users: []models.User{adminUser(), adminUser()}}
	svc := NewAdminUserService(d)

	got, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("All returned %d users, want 2", len(got))
	}
}
