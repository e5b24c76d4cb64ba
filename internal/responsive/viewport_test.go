package responsive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromCells(t *testing.T) {
	v := FromCells(80, 24, 0, 0)
	require.Equal(t, 400.0, v.Width)
	require.Equal(t, 480.0, v.Height)
	require.Equal(t, LargeMobile, v.Label())

	narrow := FromCells(60, 20, DefaultUnitsPerColumn, DefaultUnitsPerRow)
	require.Equal(t, SmallMobile, narrow.Label())

	wide := FromCells(300, 80, 10, 0)
	require.Equal(t, 3000.0, wide.Width)
	require.Equal(t, FourK, wide.Label())
	require.Contains(t, wide.String(), "fourK")
}

func TestMonitor_SubscribeSeedsCurrent(t *testing.T) {
	m := NewMonitor(FromCells(80, 24, 0, 0))
	sub := m.Subscribe(nil)
	defer sub.Close()

	require.Equal(t, 400.0, sub.Viewport().Width)
	require.Equal(t, 1, m.Subscribers())
}

func TestMonitor_PublishNotifiesLiveSubscribers(t *testing.T) {
	m := NewMonitor(FromCells(80, 24, 0, 0))

	var got []float64
	sub := m.Subscribe(func(v Viewport) { got = append(got, v.Width) })

	m.Publish(FromCells(200, 50, 0, 0))
	require.Equal(t, []float64{1000}, got)
	require.Equal(t, 1000.0, sub.Viewport().Width)

	sub.Close()
	m.Publish(FromCells(40, 10, 0, 0))
	require.Equal(t, []float64{1000}, got, "closed subscription must not be notified")
	require.Equal(t, 200.0, m.Current().Width)
}

func TestSubscription_CloseReleasesRegistration(t *testing.T) {
	m := NewMonitor(FromCells(80, 24, 0, 0))
	a := m.Subscribe(nil)
	b := m.Subscribe(nil)
	require.Equal(t, 2, m.Subscribers())

	a.Close()
	a.Close()
	require.True(t, a.Closed())
	require.Equal(t, 1, m.Subscribers())

	b.Close()
	require.Equal(t, 0, m.Subscribers())
}

func TestSubscription_NilIsSafe(t *testing.T) {
	var s *Subscription
	require.NotPanics(t, s.Close)
	require.Equal(t, LargeMobile, s.Viewport().Label())
}

func TestMonitor_ConcurrentSubscribeAndPublish(t *testing.T) {
	m := NewMonitor(FromCells(80, 24, 0, 0))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s := m.Subscribe(func(Viewport) {})
			s.Close()
		}()
		go func(cols int) {
			defer wg.Done()
			m.Publish(FromCells(cols, 24, 0, 0))
		}(40 + i)
	}
	wg.Wait()

	require.Equal(t, 0, m.Subscribers())
}
