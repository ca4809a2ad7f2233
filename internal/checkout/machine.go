package checkout

import (
	"sync"
	"time"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/pricing"
)

// Machine tracks one session's checkout. Failed behaves like idle: a new
// attempt may start from either.
type Machine struct {
	mu          sync.Mutex
	state       State
	code        string
	lang        catalog.Language
	orderNumber string
	quote       pricing.Quote
	updatedAt   time.Time
	now         func() time.Time
}

func NewMachine() *Machine {
	return &Machine{state: StateIdle, now: time.Now}
}

// Begin moves to submitting. It fails with ErrCheckoutInProgress while a
// previous attempt is still running.
func (m *Machine) Begin(quote pricing.Quote, lang catalog.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSubmitting {
		return ErrCheckoutInProgress
	}
	m.state = StateSubmitting
	m.code = CodeProcessing
	m.orderNumber = ""
	m.quote = quote
	m.lang = lang
	m.updatedAt = m.now()
	return nil
}

func (m *Machine) Succeed(orderNumber string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateSucceeded
	m.code = CodeSuccess
	m.orderNumber = orderNumber
	m.updatedAt = m.now()
}

func (m *Machine) Fail() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateFailed
	m.code = CodePayment
	m.updatedAt = m.now()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Status renders the current state. lang overrides the language the attempt
// was submitted in when non-empty.
func (m *Machine) Status(lang catalog.Language) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lang == "" {
		lang = m.lang
	}
	st := Status{
		State:       m.state,
		OrderNumber: m.orderNumber,
		Quote:       m.quote,
		UpdatedAt:   m.updatedAt,
	}
	if m.code != "" {
		st.Message = Message(m.code, lang)
	}
	return st
}

// Machines holds a Machine per session.
type Machines struct {
	mu       sync.Mutex
	machines map[string]*Machine
}

func NewMachines() *Machines {
	return &Machines{machines: make(map[string]*Machine)}
}

// Get returns the session's machine, creating it on first use. Only Submit
// calls it, after the session's cart exists, so cart eviction also drops the
// machine.
func (ms *Machines) Get(sessionID string) *Machine {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	m, ok := ms.machines[sessionID]
	if !ok {
		m = NewMachine()
		ms.machines[sessionID] = m
	}
	return m
}

// Peek returns the session's machine without creating one.
func (ms *Machines) Peek(sessionID string) (*Machine, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	m, ok := ms.machines[sessionID]
	return m, ok
}

// Forget drops a session's machine. Wired to cart session eviction.
func (ms *Machines) Forget(sessionID string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.machines, sessionID)
}

func (ms *Machines) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.machines)
}
