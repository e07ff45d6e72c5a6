package mocks

import "sync"

// AuthMetricsMock counts the authentication events recorded by services / Compte les événements d'authentification enregistrés par les services
type AuthMetricsMock struct {
	mu sync.Mutex

	LoginSuccesses int
	LoginFailures  int
	TokenRefreshes int
	InvalidTokens  int
}

func (m *AuthMetricsMock) RecordLoginAttempt(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.LoginSuccesses++
		return
	}
	m.LoginFailures++
}

func (m *AuthMetricsMock) RecordTokenRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TokenRefreshes++
}

func (m *AuthMetricsMock) RecordInvalidToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidTokens++
}
