package html2pdf

import (
	"sync"
	"time"
)

// Mock implementations shared across render and lifecycle tests.

type mockSession struct {
	mu sync.Mutex

	loadErr  error
	loadWait time.Duration
	emitErr  error
	emitWait time.Duration
	pdf      []byte

	loadedWith string
	closed     bool
	closeCalls int
	closeErr   error
}

func (m *mockSession) Load(html string) error {
	if m.loadWait > 0 {
		time.Sleep(m.loadWait)
	}
	m.mu.Lock()
	m.loadedWith = html
	m.mu.Unlock()
	return m.loadErr
}

func (m *mockSession) EmitPDF() ([]byte, error) {
	if m.emitWait > 0 {
		time.Sleep(m.emitWait)
	}
	if m.emitErr != nil {
		return nil, m.emitErr
	}
	if m.pdf != nil {
		return m.pdf, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.closeCalls++
	return m.closeErr
}

func (m *mockSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type mockEngine struct {
	mu sync.Mutex

	id           string
	disconnected bool
	session      *mockSession
	sessionErr   error
	closeCalls   int
	closeErr     error
	callbacks    []func()
}

func (m *mockEngine) ID() string {
	if m.id == "" {
		return "mock-engine"
	}
	return m.id
}

func (m *mockEngine) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.disconnected
}

func (m *mockEngine) OnDisconnect(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

func (m *mockEngine) NewSession() (Session, error) {
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	if m.session == nil {
		m.session = &mockSession{}
	}
	return m.session, nil
}

func (m *mockEngine) Close() error {
	m.mu.Lock()
	m.closeCalls++
	m.disconnected = true
	m.mu.Unlock()
	return m.closeErr
}

// fireDisconnect simulates the engine process dying.
func (m *mockEngine) fireDisconnect() {
	m.mu.Lock()
	m.disconnected = true
	callbacks := m.callbacks
	m.callbacks = nil
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

var _ Engine = (*mockEngine)(nil)
var _ Session = (*mockSession)(nil)
