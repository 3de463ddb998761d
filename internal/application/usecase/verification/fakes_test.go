package verification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fortify/backend/internal/application/adapter"
	"github.com/fortify/backend/internal/domain/entity"
	domainerror "github.com/fortify/backend/internal/domain/error"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return errors.New("duplicate email")
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

type fakeChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]*entity.VerificationChallenge
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{challenges: make(map[string]*entity.VerificationChallenge)}
}

func (s *fakeChallengeStore) Put(_ context.Context, challenge *entity.VerificationChallenge, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *challenge
	s.challenges[challenge.Email] = &copied
	return nil
}

func (s *fakeChallengeStore) Get(_ context.Context, email string) (*entity.VerificationChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge, ok := s.challenges[email]
	if !ok {
		return nil, domainerror.ErrChallengeNotFound
	}
	copied := *challenge
	return &copied, nil
}

func (s *fakeChallengeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, email)
	return nil
}

// fakeCodeGenerator hands out a fixed sequence of codes.
type fakeCodeGenerator struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (g *fakeCodeGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next >= len(g.codes) {
		return "", errors.New("out of codes")
	}
	code := g.codes[g.next]
	g.next++
	return code, nil
}

type fakeDispatcher struct {
	mu         sync.Mutex
	dispatched []adapter.CodeDispatchInput
	failWith   error
}

func (d *fakeDispatcher) DispatchVerificationCode(_ context.Context, input adapter.CodeDispatchInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return d.failWith
	}
	d.dispatched = append(d.dispatched, input)
	return nil
}

func (d *fakeDispatcher) lastDispatch() (adapter.CodeDispatchInput, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.dispatched) == 0 {
		return adapter.CodeDispatchInput{}, false
	}
	return d.dispatched[len(d.dispatched)-1], true
}

type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}
