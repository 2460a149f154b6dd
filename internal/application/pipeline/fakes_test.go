package pipeline_test

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/voluz/vendas-api/internal/domain/entity"
	"github.com/voluz/vendas-api/internal/domain/repository"
)

// Fakes em memória dos portos de persistência. O mutex no fake de leads
// torna o ClaimUnassigned condicional de verdade, para os testes de corrida.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.UID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.UID] = u
	return nil
}

func (r *fakeUserRepo) GetByUID(uid string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[uid], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.UID] = u
	return nil
}

func (r *fakeUserRepo) ListAll() ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(role string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
}

var _ repository.LeadRepository = (*fakeLeadRepo)(nil)

func newFakeLeadRepo(leads ...*entity.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: map[string]*entity.Lead{}}
	for _, l := range leads {
		cp := *l
		r.leads[l.ID] = &cp
	}
	return r
}

func (r *fakeLeadRepo) Create(l *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.leads[l.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByID(id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeadRepo) ListByOwners(uids []string) ([]*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owners := map[string]bool{}
	for _, uid := range uids {
		owners[uid] = true
	}
	var out []*entity.Lead
	for _, l := range r.leads {
		if owners[l.UserID] {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLeadRepo) ListAll() ([]*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Lead
	for _, l := range r.leads {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeLeadRepo) ClaimUnassigned(leadID, sellerUID, sellerName string, lastContact time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[leadID]
	if !ok || l.UserID != entity.UserUnassigned {
		return false, nil
	}
	l.UserID = sellerUID
	l.SellerName = sellerName
	l.Stage = entity.StageContato
	l.LastContact = lastContact
	return true, nil
}

func (r *fakeLeadRepo) UpdateStage(leadID, stage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leads[leadID]; ok {
		l.Stage = stage
	}
	return nil
}

func (r *fakeLeadRepo) UpdateOwner(leadID, sellerUID, sellerName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leads[leadID]; ok {
		l.UserID = sellerUID
		l.SellerName = sellerName
	}
	return nil
}

func (r *fakeLeadRepo) RecordCompletion(leadID string, completedAt time.Time, valueAfterDiscount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leads[leadID]; ok {
		l.Stage = entity.StageFinalizado
		l.CompletedAt = &completedAt
		l.ValueAfterDiscount = valueAfterDiscount
	}
	return nil
}

func (r *fakeLeadRepo) SetCommissionPaid(leadID string, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leads[leadID]; ok {
		l.CommissionPaid = paid
	}
	return nil
}
