package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tripwallet/internal/core/domain"
	"tripwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// In-memory implementations of the repository ports, backed by a single
// mutex-based transactor. Begin takes a process-wide lock, so every atomic
// unit runs serialized, the same guarantee SELECT ... FOR UPDATE gives the
// real postgres adapter. That makes the concurrency tests deterministic.

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperror.ErrEmailExists()
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *inMemoryUserRepo) LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	// Row locks are subsumed by the transactor's global mutex.
	return r.Exists(ctx, id)
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[w.ID] = *w
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *inMemoryWalletRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Wallet
	for _, w := range r.wallets {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryWalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, delta decimal.Decimal) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return nil, apperror.ErrNotFound("wallet")
	}
	updated := w.Balance.Add(delta)
	if updated.IsNegative() {
		return nil, apperror.ErrInsufficientFunds()
	}
	w.Balance = updated
	r.wallets[walletID] = w
	return &w, nil
}

func (r *inMemoryWalletRepo) ownerOf(walletID uuid.UUID) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[walletID]
	return w.UserID, ok
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu         sync.RWMutex
	log        []domain.Transaction
	walletRepo *inMemoryWalletRepo
}

func newInMemoryTransactionRepo(walletRepo *inMemoryWalletRepo) *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{walletRepo: walletRepo}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, *t)
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.log {
		if r.log[i].ID == id {
			t := r.log[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.log {
		if r.log[i].ID == id {
			r.log[i].Status = status
			return nil
		}
	}
	return apperror.ErrNotFound("transaction")
}

func (r *inMemoryTransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]domain.Transaction, error) {
	return r.list(func(t *domain.Transaction) bool { return t.WalletID == walletID }, offset, limit)
}

func (r *inMemoryTransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Transaction, error) {
	return r.list(func(t *domain.Transaction) bool {
		owner, ok := r.walletRepo.ownerOf(t.WalletID)
		return ok && owner == userID
	}, offset, limit)
}

func (r *inMemoryTransactionRepo) list(match func(*domain.Transaction) bool, offset, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []domain.Transaction
	for i := range r.log {
		if match(&r.log[i]) {
			all = append(all, r.log[i])
		}
	}
	// Insertion order is append order, which is oldest first already.
	if offset >= len(all) {
		return []domain.Transaction{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *inMemoryTransactionRepo) SumByWalletAndType(ctx context.Context, walletID uuid.UUID, txType domain.TransactionType) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum := decimal.Zero
	for i := range r.log {
		if r.log[i].WalletID == walletID && r.log[i].Type == txType {
			sum = sum.Add(r.log[i].Amount)
		}
	}
	return sum, nil
}

func (r *inMemoryTransactionRepo) SummaryByWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletSummary, error) {
	return r.summarize(func(t *domain.Transaction) bool { return t.WalletID == walletID }), nil
}

func (r *inMemoryTransactionRepo) SummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.WalletSummary, error) {
	return r.summarize(func(t *domain.Transaction) bool {
		owner, ok := r.walletRepo.ownerOf(t.WalletID)
		return ok && owner == userID
	}), nil
}

func (r *inMemoryTransactionRepo) summarize(match func(*domain.Transaction) bool) *domain.WalletSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := &domain.WalletSummary{TotalCredits: decimal.Zero, TotalDebits: decimal.Zero}
	for i := range r.log {
		if !match(&r.log[i]) {
			continue
		}
		switch r.log[i].Type {
		case domain.TransactionTypeCredit:
			s.TotalCredits = s.TotalCredits.Add(r.log[i].Amount)
		case domain.TransactionTypeDebit:
			s.TotalDebits = s.TotalDebits.Add(r.log[i].Amount)
		}
	}
	s.CurrentBalance = s.TotalCredits.Add(s.TotalDebits)
	return s
}

// --- In-Memory Points Repo ---

type inMemoryPointsRepo struct {
	mu     sync.RWMutex
	events []domain.PointsTransaction
}

func newInMemoryPointsRepo() *inMemoryPointsRepo {
	return &inMemoryPointsRepo{}
}

func (r *inMemoryPointsRepo) Append(ctx context.Context, tx pgx.Tx, pt *domain.PointsTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *pt)
	return nil
}

func (r *inMemoryPointsRepo) SumByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for i := range r.events {
		if r.events[i].UserID == userID {
			sum += r.events[i].Points
		}
	}
	return sum, nil
}

func (r *inMemoryPointsRepo) SumByUserLocked(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int64, error) {
	return r.SumByUser(ctx, userID)
}

func (r *inMemoryPointsRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PointsTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []domain.PointsTransaction
	for i := range r.events {
		if r.events[i].UserID == userID {
			all = append(all, r.events[i])
		}
	}
	if offset >= len(all) {
		return []domain.PointsTransaction{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// --- In-Memory Tour Repo ---

type inMemoryTourRepo struct {
	mu       sync.RWMutex
	tours    map[uuid.UUID]domain.Tour
	order    []uuid.UUID
	bookings []domain.TourBooking
}

func newInMemoryTourRepo() *inMemoryTourRepo {
	return &inMemoryTourRepo{tours: make(map[uuid.UUID]domain.Tour)}
}

func (r *inMemoryTourRepo) Create(ctx context.Context, t *domain.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tours[t.ID] = *t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *inMemoryTourRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tours[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *inMemoryTourRepo) List(ctx context.Context, offset, limit int) ([]domain.Tour, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset >= len(r.order) {
		return []domain.Tour{}, nil
	}
	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	out := make([]domain.Tour, 0, end-offset)
	for _, id := range r.order[offset:end] {
		out = append(out, r.tours[id])
	}
	return out, nil
}

func (r *inMemoryTourRepo) CreateBooking(ctx context.Context, tx pgx.Tx, b *domain.TourBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *inMemoryTourRepo) ListBookingsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.TourBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []domain.TourBooking
	for i := range r.bookings {
		if r.bookings[i].UserID == userID {
			all = append(all, r.bookings[i])
		}
	}
	if offset >= len(all) {
		return []domain.TourBooking{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// --- Serializing Transactor ---

// serialTransactor hands out one atomic unit at a time. Commit or Rollback
// releases the lock; the deferred Rollback after a Commit is a no-op.
type serialTransactor struct {
	mu sync.Mutex
}

func newSerialTransactor() *serialTransactor {
	return &serialTransactor{}
}

func (t *serialTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	tx := &serialTx{}
	tx.release = func() { t.mu.Unlock() }
	return tx, nil
}

type serialTx struct {
	once    sync.Once
	release func()
}

func (t *serialTx) Commit(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

func (t *serialTx) Rollback(ctx context.Context) error {
	t.once.Do(t.release)
	return nil
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, fmt.Errorf("not supported")
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("not supported")
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *serialTx) Conn() *pgx.Conn                                               { return nil }
