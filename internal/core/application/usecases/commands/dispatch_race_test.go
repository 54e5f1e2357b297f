package commands_test

import (
	"context"
	"sync"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory unit of work whose courier claim is a
// real compare-and-set under a mutex. It lets many dispatchers race for
// the same courier the way concurrent transactions would against the
// conditional UPDATE in postgres.
type memStore struct {
	mu          sync.Mutex
	orders      map[kernel.UUID]*order.Order
	couriers    map[kernel.UUID]*courier.Courier
	restaurants map[kernel.UUID]*restaurant.Restaurant
}

func newMemStore() *memStore {
	return &memStore{
		orders:      make(map[kernel.UUID]*order.Order),
		couriers:    make(map[kernel.UUID]*courier.Courier),
		restaurants: make(map[kernel.UUID]*restaurant.Restaurant),
	}
}

func (s *memStore) Create() commands.UoW { return s }

func (s *memStore) Begin(context.Context) error    { return nil }
func (s *memStore) Commit(context.Context) error   { return nil }
func (s *memStore) Rollback(context.Context) error { return nil }

func (s *memStore) OrderRepository() ports.OrderRepository           { return memOrderRepo{s} }
func (s *memStore) CourierRepository() ports.CourierRepository       { return memCourierRepo{s} }
func (s *memStore) RestaurantRepository() ports.RestaurantRepository { return memRestaurantRepo{s} }

func (s *memStore) getCourier(id kernel.UUID) *courier.Courier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.couriers[id]
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID()] = o
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID()] = o
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o, nil
}

func (r memOrderRepo) GetByShortCode(_ context.Context, code string) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ShortCode() == code {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", code)
}

func (r memOrderRepo) GetAllAwaitingDispatch(_ context.Context) ([]*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*order.Order
	for _, o := range r.s.orders {
		if o.Status() == order.Confirmed || o.Status() == order.CourierRejected {
			out = append(out, o)
		}
	}
	return out, nil
}

type memCourierRepo struct{ s *memStore }

func (r memCourierRepo) Add(_ context.Context, c *courier.Courier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.couriers[c.ID()] = c
	return nil
}

func (r memCourierRepo) Update(_ context.Context, c *courier.Courier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.couriers[c.ID()] = c
	return nil
}

func (r memCourierRepo) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}
	return c, nil
}

func (r memCourierRepo) GetAllEligible(_ context.Context, excluding ...kernel.UUID) ([]*courier.Courier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*courier.Courier
	for _, c := range r.s.couriers {
		skip := false
		for _, ex := range excluding {
			if c.ID().IsEqual(ex) {
				skip = true
				break
			}
		}
		if skip || !c.IsEligible() {
			continue
		}

		// Hand out detached copies so ranking never reads a courier
		// another goroutine is claiming.
		copied, err := courier.RestoreCourier(
			c.ID(), c.Name(), c.Vehicle(), c.Approval(),
			c.IsOnline(), c.IsAvailable(),
			c.Location(), c.LocationUpdatedAt(),
			c.CurrentOrder(), c.TotalDeliveries(), c.Rating(),
		)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

func (r memCourierRepo) Claim(_ context.Context, courierID, orderID kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	claimed, ok := r.s.couriers[courierID]
	if !ok {
		return errs.NewObjectNotFoundError("courier", courierID)
	}
	if err := claimed.MarkBusy(orderID); err != nil {
		return ports.ErrConcurrentModification
	}
	return nil
}

func (r memCourierRepo) Release(_ context.Context, courierID kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	released, ok := r.s.couriers[courierID]
	if !ok {
		return errs.NewObjectNotFoundError("courier", courierID)
	}
	released.MarkFree()
	return nil
}

type memRestaurantRepo struct{ s *memStore }

func (r memRestaurantRepo) Add(_ context.Context, rest *restaurant.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.restaurants[rest.ID()] = rest
	return nil
}

func (r memRestaurantRepo) Update(_ context.Context, rest *restaurant.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.restaurants[rest.ID()] = rest
	return nil
}

func (r memRestaurantRepo) Get(_ context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rest, ok := r.s.restaurants[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("restaurant", id)
	}
	return rest, nil
}

func TestDispatchOrderCommandHandler_ConcurrentClaims(t *testing.T) {
	const contenders = 16

	store := newMemStore()
	restaurantID := kernel.NewUUID()
	require.NoError(t,
		store.RestaurantRepository().Add(t.Context(), activeRestaurant(t, restaurantID, 0)))

	only := eligibleCourierAt(t, 36.76, 3.06)
	require.NoError(t, store.CourierRepository().Add(t.Context(), only))

	orders := make([]*order.Order, contenders)
	for i := range orders {
		orders[i] = confirmedOrderFor(t, restaurantID)
		require.NoError(t, store.OrderRepository().Add(t.Context(), orders[i]))
	}

	handler := commands.NewDispatchOrderCommandHandler(store, services.DefaultTariff(), nil)

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewDispatchOrderCommand(orders[i].ID())
			if err != nil {
				results[i] = err
				return
			}
			results[i] = handler.Handle(context.Background(), cmd)
		}()
	}
	wg.Wait()

	won := 0
	for _, err := range results {
		if err == nil {
			won++
			continue
		}
		require.ErrorIs(t, err, commands.ErrNoCourierAvailable)
	}
	assert.Equal(t, 1, won, "exactly one dispatcher should win the courier")

	winner := store.getCourier(only.ID())
	require.NotNil(t, winner.CurrentOrder())

	assigned := 0
	for _, o := range orders {
		if o.Status() == order.Assigned {
			assigned++
			require.NotNil(t, o.Courier())
			assert.True(t, o.Courier().IsEqual(only.ID()))
			assert.True(t, winner.CurrentOrder().IsEqual(o.ID()))
		} else {
			assert.Equal(t, order.Confirmed, o.Status())
		}
	}
	assert.Equal(t, 1, assigned)
}
