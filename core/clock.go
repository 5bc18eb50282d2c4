package core

import "time"

// TimeProvider abstracts the clock used to timestamp notifications and
// failure records, so tests can drive time deterministically
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider implements TimeProvider using the system
// monotonic clock
type MonotonicTimeProvider struct {
	start time.Time
}

// NewMonotonicTimeProvider creates a time provider anchored at creation
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{start: time.Now()}
}

// Now returns the current monotonic time
func (m *MonotonicTimeProvider) Now() time.Time {
	return m.start.Add(time.Since(m.start))
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.currentTime = m.currentTime.Add(d)
}
