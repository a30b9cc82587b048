// Package memory хранилище в памяти процесса с теми же контрактами и ошибками,
// что и репозитории PostgreSQL. Используется драйвером "memory" и в тестах.
//
// Транзакции выполняются строго по одной: транзакция работает с копией состояния
// и подменяет им текущее при успешном завершении. Это дает сериализуемую изоляцию
// без отдельных блокировок строк.
package memory

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-ConsultingBooking/internal/domain"
	"github.com/m04kA/SMC-ConsultingBooking/pkg/clock"
)

type state struct {
	services  map[int64]domain.ConsultingService
	bookings  map[int64]domain.BookingRequest
	slots     map[int64]domain.BookingSlot
	rules     map[int64]domain.AvailabilityRule
	blackouts map[int64]domain.BlackoutPeriod
	seq       int64
}

func newState() *state {
	return &state{
		services:  make(map[int64]domain.ConsultingService),
		bookings:  make(map[int64]domain.BookingRequest),
		slots:     make(map[int64]domain.BookingSlot),
		rules:     make(map[int64]domain.AvailabilityRule),
		blackouts: make(map[int64]domain.BlackoutPeriod),
	}
}

func (s *state) clone() *state {
	c := &state{
		services:  make(map[int64]domain.ConsultingService, len(s.services)),
		bookings:  make(map[int64]domain.BookingRequest, len(s.bookings)),
		slots:     make(map[int64]domain.BookingSlot, len(s.slots)),
		rules:     make(map[int64]domain.AvailabilityRule, len(s.rules)),
		blackouts: make(map[int64]domain.BlackoutPeriod, len(s.blackouts)),
		seq:       s.seq,
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.rules {
		c.rules[k] = v
	}
	for k, v := range s.blackouts {
		c.blackouts[k] = v
	}
	return c
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

type txKey struct{}

type tx struct {
	st *state
}

// Store хранилище в памяти
type Store struct {
	txMu  sync.Mutex // одна пишущая транзакция за раз
	mu    sync.RWMutex
	st    *state
	clock clock.Clock
}

// NewStore создает пустое хранилище
func NewStore(c clock.Clock) *Store {
	if c == nil {
		c = clock.Real{}
	}
	return &Store{st: newState(), clock: c}
}

func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{store: s}
}

func (s *Store) Availability() *AvailabilityRepository {
	return &AvailabilityRepository{store: s}
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

func inTransaction(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	return t, ok && t != nil
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if t, ok := inTransaction(ctx); ok {
		return fn(t.st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// write вне транзакции работает как короткая транзакция из одной операции
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if t, ok := inTransaction(ctx); ok {
		return fn(t.st)
	}
	return s.atomically(ctx, func(ctx context.Context) error {
		t, _ := inTransaction(ctx)
		return fn(t.st)
	})
}

func (s *Store) atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := inTransaction(ctx); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	t := &tx{st: s.st.clone()}
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = t.st
	s.mu.Unlock()
	return nil
}

// TxManager менеджер транзакций хранилища в памяти
type TxManager struct {
	store *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.atomically(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.atomically(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.atomically(ctx, fn)
}
