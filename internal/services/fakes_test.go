package services

import (
	"context"
	"sync"

	"github.com/rafabene/unusualpills/internal/domain/entities"
	"github.com/rafabene/unusualpills/internal/domain/ports"
)

// fakeSignupRepo imita a semântica de upsert do banco em memória
type fakeSignupRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]entities.Signup
	err    error
}

func newFakeSignupRepo() *fakeSignupRepo {
	return &fakeSignupRepo{rows: make(map[string]entities.Signup)}
}

func (r *fakeSignupRepo) Upsert(_ context.Context, signup *entities.Signup) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return false, r.err
	}

	key := signup.Email.String()
	existing, ok := r.rows[key]
	if !ok {
		r.nextID++
		signup.ID = r.nextID
		r.rows[key] = *signup
		return true, nil
	}

	signup.ID = existing.ID
	signup.CreatedAt = existing.CreatedAt
	r.rows[key] = *signup
	return false, nil
}

func (r *fakeSignupRepo) FindByEmail(_ context.Context, email string) (*entities.Signup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[email]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeSignupRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

type fakeUnitOfWork struct {
	calls int
}

func (u *fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	u.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	mu        sync.Mutex
	signups   map[string]int
	checkouts map[bool]int
	failures  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		signups:   make(map[string]int),
		checkouts: make(map[bool]int),
		failures:  make(map[string]int),
	}
}

func (m *fakeMetrics) SignupRecorded(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signups[outcome]++
}

func (m *fakeMetrics) CheckoutCreated(discounted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkouts[discounted]++
}

func (m *fakeMetrics) CheckoutFailed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[reason]++
}

var _ ports.Metrics = (*fakeMetrics)(nil)

// fakeGateway registra as chamadas feitas ao provedor de pagamento
type fakeGateway struct {
	coupons    []ports.CouponRequest
	sessions   []ports.SessionRequest
	couponErr  error
	sessionErr error
}

func (g *fakeGateway) CreateCoupon(_ context.Context, req ports.CouponRequest) (string, error) {
	if g.couponErr != nil {
		return "", g.couponErr
	}
	g.coupons = append(g.coupons, req)
	return "coupon_123", nil
}

func (g *fakeGateway) CreateSession(_ context.Context, req ports.SessionRequest) (string, error) {
	if g.sessionErr != nil {
		return "", g.sessionErr
	}
	g.sessions = append(g.sessions, req)
	return "https://checkout.stripe.com/c/pay/cs_test_123", nil
}
