package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID    map[string]User
	byEmail map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}, byEmail: map[string]string{}}
}

func (r *testRepo) Create(_ context.Context, u User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(_ context.Context, email string) (User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// hasher trivial: "hash:" + password
type testHasher struct{}

func (testHasher) Hash(p string) (string, error) { return "hash:" + p, nil }
func (testHasher) Compare(h, p string) error {
	if h != "hash:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type testIssuer struct{}

func (testIssuer) Issue(userID, email string) (string, error) {
	return "token-" + userID, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, testHasher{}, testIssuer{})
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestRegister_CreatesUserAndToken(t *testing.T) {
	svc, repo := newTestService()

	sess, err := svc.Register(context.Background(), RegisterInput{Email: " Ana@Example.COM ", Password: "secret1", Name: "Ana"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.User.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", sess.User.Email)
	}
	if sess.Token != "token-"+sess.User.ID {
		t.Fatalf("unexpected token %q", sess.Token)
	}
	if repo.byID[sess.User.ID].PasswordHash != "hash:secret1" {
		t.Fatalf("expected password stored hashed")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "not-an-email", Password: "secret1", Name: "Ana"},
		{Email: "ana@example.com", Password: "12345", Name: "Ana"},
		{Email: "ana@example.com", Password: "secret1", Name: "A"},
		{Email: "Ana <ana@example.com>", Password: "secret1", Name: "Ana"},
		{Email: "ana@", Password: "secret1", Name: "Ana"},
		{Email: "ana@@example.com", Password: "secret1", Name: "Ana"},
		{Email: "   ", Password: "secret1", Name: "Ana"},
	}
	for _, in := range cases {
		if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestValidEmail(t *testing.T) {
	for _, email := range []string{"ana@example.com", "ana.perez+pets@mail.example.co", "luna_01@example.org"} {
		if !validEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}
	for _, email := range []string{"", "ana", "ana@", "@example.com", "ana example@example.com"} {
		if validEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secret1", Name: "Ana"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "ANA@example.com", Password: "secret2", Name: "Ana Two"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secret1", Name: "Ana"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	sess, err := svc.Login(ctx, "ANA@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.User.ID != reg.User.ID {
		t.Fatalf("expected same user")
	}

	_, wrongPass := svc.Login(ctx, "ana@example.com", "nope")
	_, unknown := svc.Login(ctx, "ghost@example.com", "secret1")
	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPass, unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("login failures must be indistinguishable")
	}
}

func TestExists(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	reg, _ := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secret1", Name: "Ana"})

	ok, err := svc.Exists(ctx, reg.User.ID)
	if err != nil || !ok {
		t.Fatalf("expected user to exist, got %v err=%v", ok, err)
	}
	ok, err = svc.Exists(ctx, "ghost")
	if err != nil || ok {
		t.Fatalf("expected ghost not to exist, got %v err=%v", ok, err)
	}
}
