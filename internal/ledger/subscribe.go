package ledger

import "ieltslearn/internal/domain"

// Snapshot returns a value copy of the current state.
func (l *Ledger) Snapshot() domain.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap.Clone()
}

// Subscribe registers a consumer for published snapshots. Each subscriber
// holds at most the latest snapshot: a slow consumer has stale values
// replaced, never buffered. The returned cancel func unregisters the
// subscriber and closes its channel.
func (l *Ledger) Subscribe() (<-chan domain.Snapshot, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan domain.Snapshot, 1)
	if l.closed {
		close(ch)
		return ch, func() {}
	}

	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close tears the ledger down when its scope ends (sign-in/sign-out).
// Subsequent operations return ErrClosed and nothing more is published,
// so a late caller holding a stale ledger cannot write into the wrong
// scope's snapshot stream.
func (l *Ledger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for id, ch := range l.subs {
		delete(l.subs, id)
		close(ch)
	}
}

// publishLocked replaces every subscriber's pending snapshot with the
// latest one. Callers hold l.mu.
func (l *Ledger) publishLocked() {
	if l.closed {
		return
	}
	snap := l.snap.Clone()
	for _, ch := range l.subs {
		// Replace-on-write: drain a stale value, then push the latest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
