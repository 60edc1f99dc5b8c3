package engine

import "sync"

// subscriberBuffer bounds how far a slow subscriber may lag before it is
// dropped. A job's output is unbounded in principle; a stalled client must
// not be allowed to grow memory without limit, so it is cut loose instead.
const subscriberBuffer = 256

type subscriber struct {
	ch     chan Event
	closed bool
}

// Broadcaster is the append-only, ordered output log for a single job, fanned
// out to any number of live or replaying subscribers.
//
// A single mutex guards both the log and the subscriber set so that
// publishing an event and offering it to every live subscriber happen as one
// atomic step (B1), and so that a new subscriber's replay snapshot and its
// registration for future events happen as one atomic step, leaving no gap
// in which an event could be missed or delivered twice (B3).
type Broadcaster struct {
	mu   sync.Mutex
	log  []Event
	subs map[*subscriber]struct{}
	seq  uint64
	done bool // true once Exit has been published; no further events accepted
}

// NewBroadcaster returns an empty Broadcaster ready to accept events.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*subscriber]struct{})}
}

func (b *Broadcaster) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		// B2: nothing is published after Exit.
		return
	}
	ev.Seq = b.seq
	b.seq++
	b.log = append(b.log, ev)
	if ev.Kind == Exit {
		b.done = true
	}
	for s := range b.subs {
		if s.closed {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			// Slow subscriber: drop it rather than block the publisher or
			// grow its buffer without bound.
			close(s.ch)
			s.closed = true
			delete(b.subs, s)
			continue
		}
		if ev.Kind == Exit {
			close(s.ch)
			s.closed = true
		}
	}
	if ev.Kind == Exit {
		b.subs = make(map[*subscriber]struct{})
	}
}

func (b *Broadcaster) publishStdout(data []byte) { b.publish(stdoutEvent(data)) }
func (b *Broadcaster) publishStderr(data []byte) { b.publish(stderrEvent(data)) }
func (b *Broadcaster) publishExit(code int)      { b.publish(exitEvent(code)) }

// Subscribe registers a new sink and returns a channel of events. If
// fromBeginning is true, the channel is first loaded with a snapshot of every
// event already published, then continues with everything published after
// subscription; no event in the combined sequence is skipped or repeated
// (B3). If fromBeginning is false, only events published after this call are
// delivered.
//
// The returned channel is closed when the job exits and the replay (if any)
// plus all live events have been delivered, or when the subscriber is
// dropped for falling behind.
func (b *Broadcaster) Subscribe(fromBeginning bool) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	var backlog []Event
	if fromBeginning {
		backlog = make([]Event, len(b.log))
		copy(backlog, b.log)
	}

	// already finished: nothing more will ever be published, so there is no
	// need to register a live subscriber — just hand back the replay (if any)
	// over a pre-closed channel, or an already-closed empty channel.
	if b.done {
		ch := make(chan Event, len(backlog))
		for _, ev := range backlog {
			ch <- ev
		}
		close(ch)
		return ch
	}

	ch := make(chan Event, subscriberBuffer+len(backlog))
	for _, ev := range backlog {
		ch <- ev
	}
	s := &subscriber{ch: ch}
	b.subs[s] = struct{}{}
	return ch
}

// Snapshot returns a copy of every event published so far, in publish order.
func (b *Broadcaster) Snapshot() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.log))
	copy(out, b.log)
	return out
}

// Done reports whether Exit has been published.
func (b *Broadcaster) Done() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}
