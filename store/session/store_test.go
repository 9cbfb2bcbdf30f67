package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetCreatesEmptySession(t *testing.T) {
	s := NewStore()

	sess := s.Get(42)
	require.NotNil(t, sess.Cart)
	assert.Empty(t, sess.Cart)
	assert.Equal(t, DialogIdle, sess.Dialog)
	assert.Equal(t, 1, s.Len())
}

func TestStoreUpdateIsVisibleToGet(t *testing.T) {
	s := NewStore()

	s.Update(42, func(sess *Session) {
		sess.Cart[1] = 2
		sess.Dialog = DialogAwaitingDonation
	})

	sess := s.Get(42)
	assert.Equal(t, 2, sess.Cart[1])
	assert.Equal(t, DialogAwaitingDonation, sess.Dialog)
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	s.Update(42, func(sess *Session) { sess.Cart[1] = 1 })

	snap := s.Get(42)
	snap.Cart[1] = 99
	snap.Cart[7] = 3

	assert.Equal(t, 1, s.Get(42).Cart[1])
	assert.NotContains(t, s.Get(42).Cart, int64(7))
}

func TestStoreUsersAreIsolated(t *testing.T) {
	s := NewStore()

	s.Update(1, func(sess *Session) { sess.Cart[10] = 1 })
	s.Update(2, func(sess *Session) { sess.Cart[20] = 5 })

	assert.Equal(t, map[int64]int{10: 1}, s.Get(1).Cart)
	assert.Equal(t, map[int64]int{20: 5}, s.Get(2).Cart)
	assert.Equal(t, 2, s.Len())
}

func TestStoreConcurrentUpdates(t *testing.T) {
	s := NewStore()

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Update(7, func(sess *Session) {
					sess.Cart[1]++
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, s.Get(7).Cart[1])
}

func TestSessionCartSize(t *testing.T) {
	sess := Session{Cart: map[int64]int{1: 2, 3: 1}}
	assert.Equal(t, 3, sess.CartSize())
	assert.Equal(t, 0, Session{}.CartSize())
}
