package timer

import (
	"context"
	"sync"
)

// recordingAlarm counts Play and Stop calls.
type recordingAlarm struct {
	mu      sync.Mutex
	plays   int
	stops   int
	playing bool
	playErr error
}

func (a *recordingAlarm) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plays++
	if a.playErr != nil {
		return a.playErr
	}
	a.playing = true
	return nil
}

func (a *recordingAlarm) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stops++
	a.playing = false
}

func (a *recordingAlarm) counts() (plays, stops int, playing bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plays, a.stops, a.playing
}

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

func (m *mockNotifier) notices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func (m *mockNotifier) urgentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urgent)
}
