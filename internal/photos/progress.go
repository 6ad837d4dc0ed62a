package photos

// Progress is the state of the most recent upload.
type Progress struct {
	Loading bool
	// Percent runs from 0 to 100.
	Percent int
	// Err is set only when an upload failed on every path.
	Err error
}

// Subscribe returns a channel receiving every progress change and a function
// that detaches it. Slow readers miss intermediate snapshots.
func (m *Manager) Subscribe() (<-chan Progress, func()) {
	ch := make(chan Progress, 8)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
}

// Progress returns the current upload progress.
func (m *Manager) Progress() Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

func (m *Manager) setProgress(p Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress = p
	for _, ch := range m.subs {
		select {
		case ch <- p:
		default:
		}
	}
}
