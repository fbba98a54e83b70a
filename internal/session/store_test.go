package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"rz-parfum-be/internal/product"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var rose = product.Product{ID: "2", Name: "Rose Éternelle", Price: 50, Category: product.CategoryWomen}

func addRose(st State) State {
	st.Cart = st.Cart.AddItem(rose)
	return st
}

func TestStore_GetUpdate(t *testing.T) {
	s := NewStore(time.Hour)

	assert.True(t, s.Get("dev-1").Cart.IsEmpty())
	assert.Equal(t, 0, s.Len())

	got := s.Update("dev-1", addRose)
	assert.Equal(t, 1, got.Cart.Quantity("2"))
	assert.Equal(t, 1, s.Get("dev-1").Cart.Quantity("2"))
	assert.True(t, s.Get("dev-2").Cart.IsEmpty())
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := NewStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("dev", addRose)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Get("dev").Cart.Quantity("2"))
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(time.Minute)
	s.now = func() time.Time { return now }

	s.Update("old", addRose)
	now = now.Add(30 * time.Second)
	s.Update("fresh", addRose)
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Get("fresh").Cart.IsEmpty())
	assert.True(t, s.Get("old").Cart.IsEmpty())
}

func TestStore_RunJanitorStops(t *testing.T) {
	s := NewStore(time.Nanosecond)
	s.Update("dev", addRose)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
