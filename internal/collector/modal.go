package collector

import (
	"errors"
	"sync"
)

// ModalState is the lifecycle state of a form modal.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	ModalSubmitting
)

var (
	// ErrSubmitInFlight is returned when a submission starts while a
	// previous one has not finished.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrModalClosed is returned when a submission starts on a closed modal.
	ErrModalClosed = errors.New("modal is not open")
)

// Modal tracks the state machine of a form dialog:
// Closed -> Open -> Submitting -> (Closed on success | Open on failure).
// At most one submission can be in flight.
type Modal struct {
	mu    sync.Mutex
	state ModalState
}

// State returns the current state.
func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Open opens the modal. Opening an already-open modal is a no-op; a
// submitting modal stays submitting.
func (m *Modal) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalClosed {
		m.state = ModalOpen
	}
}

// Close dismisses the modal unless a submission is in flight.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalOpen {
		m.state = ModalClosed
	}
}

// Begin transitions Open -> Submitting. A second concurrent submission is
// rejected with ErrSubmitInFlight.
func (m *Modal) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case ModalSubmitting:
		return ErrSubmitInFlight
	case ModalClosed:
		return ErrModalClosed
	}
	m.state = ModalSubmitting
	return nil
}

// Finish resolves the in-flight submission: success closes the modal,
// failure returns it to Open so the form can be corrected.
func (m *Modal) Finish(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != ModalSubmitting {
		return
	}
	if success {
		m.state = ModalClosed
	} else {
		m.state = ModalOpen
	}
}
