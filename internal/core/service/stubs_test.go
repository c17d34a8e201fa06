package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	findErr   error
	updateErr error
	updated   map[string]domain.Role
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User), updated: make(map[string]domain.Role)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated[id] = role
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	out := make(map[domain.Role]int64)
	for _, u := range r.users {
		out[u.Role]++
	}
	return out, nil
}

type stubAppRepo struct {
	byID      map[string]*domain.CreatorApplication
	createErr error
	seq       int
}

func newStubAppRepo() *stubAppRepo {
	return &stubAppRepo{byID: make(map[string]*domain.CreatorApplication)}
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.CreatorApplication) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	app.ID = fmt.Sprintf("app_%d", r.seq)
	clone := *app
	r.byID[app.ID] = &clone
	return nil
}

func (r *stubAppRepo) FindByID(_ context.Context, id string) (*domain.CreatorApplication, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppRepo) FindPendingByUser(_ context.Context, userID string) (*domain.CreatorApplication, error) {
	for _, a := range r.byID {
		if a.UserID == userID && a.Status == domain.ApplicationPending {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubAppRepo) ListByStatus(_ context.Context, status domain.ApplicationStatus, _, _ int) ([]*domain.CreatorApplication, int64, error) {
	var out []*domain.CreatorApplication
	for _, a := range r.byID {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubAppRepo) MarkReviewed(_ context.Context, id string, status domain.ApplicationStatus, reviewer string, at time.Time) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	if a.Status != domain.ApplicationPending {
		return domain.ErrApplicationNotPending
	}
	a.Status = status
	a.ReviewedBy = reviewer
	a.ReviewedAt = &at
	return nil
}

func (r *stubAppRepo) CountByStatus(_ context.Context, status domain.ApplicationStatus) (int64, error) {
	var n int64
	for _, a := range r.byID {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

type stubSolutionRepo struct {
	mu        sync.Mutex
	items     []*domain.Solution
	listErr   error
	updateErr map[string]error
	ratings   map[string]float64
	counts    map[string]int
	lastQuery ports.SolutionFilter
}

func newStubSolutionRepo(items ...*domain.Solution) *stubSolutionRepo {
	return &stubSolutionRepo{
		items:     items,
		updateErr: make(map[string]error),
		ratings:   make(map[string]float64),
		counts:    make(map[string]int),
	}
}

func (r *stubSolutionRepo) ListPublished(_ context.Context, f ports.SolutionFilter) ([]*domain.Solution, int64, error) {
	r.lastQuery = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var out []*domain.Solution
	for _, s := range r.items {
		if s.Status == domain.SolutionPublished {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubSolutionRepo) ListByCreator(_ context.Context, creatorID string) ([]*domain.Solution, error) {
	var out []*domain.Solution
	for _, s := range r.items {
		if s.CreatorID == creatorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSolutionRepo) ListIDs(_ context.Context) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	ids := make([]string, 0, len(r.items))
	for _, s := range r.items {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (r *stubSolutionRepo) UpdateRating(_ context.Context, id string, avg float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErr[id]; err != nil {
		return err
	}
	r.ratings[id] = avg
	r.counts[id] = count
	return nil
}

func (r *stubSolutionRepo) CountByStatus(_ context.Context) (map[domain.SolutionStatus]int64, error) {
	out := make(map[domain.SolutionStatus]int64)
	for _, s := range r.items {
		out[s.Status]++
	}
	return out, nil
}

type stubReviewRepo struct {
	ratings map[string][]int
	errFor  map[string]error
}

func (r *stubReviewRepo) AggregateRating(_ context.Context, solutionID string) (float64, int, error) {
	if err := r.errFor[solutionID]; err != nil {
		return 0, 0, err
	}
	rs := r.ratings[solutionID]
	if len(rs) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, v := range rs {
		sum += v
	}
	return float64(sum) / float64(len(rs)), len(rs), nil
}

func (r *stubReviewRepo) Count(_ context.Context) (int64, error) {
	var n int64
	for _, rs := range r.ratings {
		n += int64(len(rs))
	}
	return n, nil
}

type stubLock struct {
	held       bool
	acquireErr error
	released   []string
}

func (l *stubLock) Acquire(_ context.Context, name string, _ time.Duration) (string, bool, error) {
	if l.acquireErr != nil {
		return "", false, l.acquireErr
	}
	if l.held {
		return "", false, nil
	}
	l.held = true
	return "token-" + name, true, nil
}

func (l *stubLock) Release(_ context.Context, name, token string) error {
	if token != "token-"+name {
		return errors.New("token mismatch")
	}
	l.held = false
	l.released = append(l.released, name)
	return nil
}
