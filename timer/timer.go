package timer

// A Source reports the number of seconds elapsed since it was initialized.
type Source interface {
	Now() float64
}

// Func adapts a plain function to the Source interface.
type Func func() float64

// Now implements Source.
func (f Func) Now() float64 {
	return f()
}

// Monotonic is a Source backed by the highest resolution clock the host
// provides. Values returned by Now never decrease.
type Monotonic struct {
	monotonic bool

	// Ticks per second for the selected clock.
	frequency uint64

	// Tick value captured at initialization.
	offset uint64

	last float64
}

// Create a new Monotonic source. The zero reference is captured immediately.
func NewMonotonic() *Monotonic {
	m := &Monotonic{}
	m.monotonic, m.frequency = detectClock()
	m.offset = m.ticks()
	return m
}

// IsMonotonic returns true if the source reads a monotonic clock rather than
// the wall clock.
func (m *Monotonic) IsMonotonic() bool {
	return m.monotonic
}

// Now implements Source.
func (m *Monotonic) Now() float64 {
	value := m.ticks()
	var elapsed float64
	if value > m.offset {
		elapsed = float64(value-m.offset) / float64(m.frequency)
	}

	// The wall clock fallback may step backwards
	if elapsed < m.last {
		return m.last
	}
	m.last = elapsed
	return elapsed
}

func (m *Monotonic) ticks() uint64 {
	return readClock(m.monotonic)
}
