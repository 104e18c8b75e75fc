package usecase

import (
	"sync"
)

// fakeMailer records the notification emails the usecases send. Setting err
// makes every send fail.
type fakeMailer struct {
	mu                sync.Mutex
	err               error
	verificationCodes map[string]string
	welcomes          []string
	resetLinks        map[string]string
	resetSuccesses    []string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verificationCodes: make(map[string]string),
		resetLinks:        make(map[string]string),
	}
}

func (m *fakeMailer) SendVerificationEmail(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.verificationCodes[to] = code
	return nil
}

func (m *fakeMailer) SendWelcomeEmail(to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, to)
	return nil
}

func (m *fakeMailer) SendPasswordResetEmail(to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.resetLinks[to] = link
	return nil
}

func (m *fakeMailer) SendResetSuccessEmail(to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.resetSuccesses = append(m.resetSuccesses, to)
	return nil
}

func (m *fakeMailer) verificationCodeFor(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verificationCodes[to]
}

func (m *fakeMailer) resetLinkFor(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetLinks[to]
}

func (m *fakeMailer) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
