package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/repository"
)

// fakeWorkerRepo serves a fixed directory keyed by identity key.
type fakeWorkerRepo struct {
	workers map[string]*domain.Worker
}

func newFakeWorkerRepo(workers ...*domain.Worker) *fakeWorkerRepo {
	repo := &fakeWorkerRepo{workers: make(map[string]*domain.Worker)}
	for _, w := range workers {
		repo.workers[w.IdentityKey] = w
	}
	return repo
}

func (r *fakeWorkerRepo) FindByIdentity(_ context.Context, key string) (*domain.Worker, error) {
	if w, ok := r.workers[key]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkerRepo) CostCenterOf(_ context.Context, key string) (*string, error) {
	if w, ok := r.workers[key]; ok {
		return w.CostCenter, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkerRepo) GetByID(_ context.Context, id int64) (*domain.Worker, error) {
	for _, w := range r.workers {
		if w.ID == id {
			copied := *w
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkerRepo) List(_ context.Context) ([]domain.Worker, error) {
	var result []domain.Worker
	for _, w := range r.workers {
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeWorkerRepo) Create(_ context.Context, worker *domain.Worker) error {
	if _, exists := r.workers[worker.IdentityKey]; exists {
		return repository.ErrDuplicateKey
	}
	worker.ID = int64(len(r.workers) + 1)
	copied := *worker
	r.workers[worker.IdentityKey] = &copied
	return nil
}

func (r *fakeWorkerRepo) Update(_ context.Context, worker *domain.Worker) error {
	for key, w := range r.workers {
		if w.ID == worker.ID {
			copied := *worker
			r.workers[key] = &copied
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkerRepo) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	var removed int64
	for key, w := range r.workers {
		for _, id := range ids {
			if w.ID == id {
				delete(r.workers, key)
				removed++
			}
		}
	}
	return removed, nil
}

func (r *fakeWorkerRepo) DeleteByCompany(_ context.Context, company string) (int64, error) {
	var removed int64
	for key, w := range r.workers {
		if w.Company == company {
			delete(r.workers, key)
			removed++
		}
	}
	return removed, nil
}

// fakeOrderRepo is a mutex-guarded in-memory ledger. Admit mirrors the
// production transaction: sum, check and insert happen under one lock.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
	clock  func() time.Time
}

func newFakeOrderRepo(clock func() time.Time) *fakeOrderRepo {
	if clock == nil {
		clock = time.Now
	}
	return &fakeOrderRepo{clock: clock}
}

func (r *fakeOrderRepo) Admit(_ context.Context, order *domain.Order, maxDaily int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	already := 0
	for _, o := range r.orders {
		if o.ID == order.ID {
			return repository.ErrDuplicateTicket
		}
		if o.WorkerKey == order.WorkerKey && o.DateStr == order.DateStr {
			already += o.Quantity
		}
	}
	if already+order.Quantity > maxDaily {
		return &repository.QuotaViolationError{Max: maxDaily, Already: already}
	}
	order.CreatedAt = r.clock()
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepo) SumQuantityFor(_ context.Context, workerKey, dateStr string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, o := range r.orders {
		if o.WorkerKey == workerKey && o.DateStr == dateStr {
			total += o.Quantity
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) GetDetail(_ context.Context, id string) (*domain.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return &domain.OrderDetail{Order: o}, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeReportRepo lets report tests join orders back to current worker
// records via the costCenters map.
type fakeReportRepo struct {
	*fakeOrderRepo
	costCenters map[string]*string
}

func newFakeReportRepo(clock func() time.Time) *fakeReportRepo {
	return &fakeReportRepo{
		fakeOrderRepo: newFakeOrderRepo(clock),
		costCenters:   make(map[string]*string),
	}
}

func (r *fakeReportRepo) ListForReport(_ context.Context, filter repository.ReportFilter) ([]domain.ReportRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []domain.ReportRow
	for _, o := range r.orders {
		if filter.Date != nil && o.DateStr != *filter.Date {
			continue
		}
		if filter.MonthPrefix != nil && !strings.HasPrefix(o.DateStr, *filter.MonthPrefix) {
			continue
		}
		if filter.FromDate != nil && o.DateStr < *filter.FromDate {
			continue
		}
		if filter.ToDate != nil && o.DateStr > *filter.ToDate {
			continue
		}
		if filter.Company != nil && o.Company != *filter.Company {
			continue
		}
		if filter.WorkerKey != nil && o.WorkerKey != *filter.WorkerKey {
			continue
		}
		rows = append(rows, domain.ReportRow{Order: o, CostCenter: r.costCenters[o.WorkerKey]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if filter.OrderByDateFirst && rows[i].DateStr != rows[j].DateStr {
			return rows[i].DateStr > rows[j].DateStr
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (r *fakeOrderRepo) ListForReport(_ context.Context, _ repository.ReportFilter) ([]domain.ReportRow, error) {
	return nil, nil
}

func (r *fakeOrderRepo) UpdatePrinted(_ context.Context, id string, printed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Printed = printed
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeSessionRepo stores sessions in memory.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.CreatedAt = time.Now()
	r.sessions[session.Token] = *session
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for token, s := range r.sessions {
		if s.ExpiresAt.Before(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeSessionRepo) Exists(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[token]
	return ok, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}
