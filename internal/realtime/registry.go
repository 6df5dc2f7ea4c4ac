// Package realtime tracks live client connections per recipient and pushes
// notification payloads to them.
package realtime

import "sync"

// Channel is one live connection capable of receiving pushed payloads. A
// Send error marks the channel dead; the registry drops it.
type Channel interface {
	Send(payload []byte) error
	Close() error
}

// Registry maps recipient IDs to their open channels. A recipient may hold
// several channels at once (multiple tabs, devices). All methods are safe
// for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	recipients map[string]*connSet
}

func NewRegistry() *Registry {
	return &Registry{recipients: make(map[string]*connSet)}
}

// connSet holds the channels of a single recipient behind its own lock so
// pushes to different recipients do not serialize on the registry lock.
type connSet struct {
	mu    sync.Mutex
	conns map[Channel]struct{}
}

// Register adds ch to the recipient's connection set. The add happens while
// the registry lock is still held: a concurrent dropIfEmpty cannot delete the
// set between the lookup and the insert, which would orphan the channel.
func (r *Registry) Register(recipientID string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.recipients[recipientID]
	if !ok {
		set = &connSet{conns: make(map[Channel]struct{})}
		r.recipients[recipientID] = set
	}

	set.mu.Lock()
	set.conns[ch] = struct{}{}
	set.mu.Unlock()
}

// Unregister removes ch from the recipient's connection set. Unknown
// recipients and already-removed channels are no-ops.
func (r *Registry) Unregister(recipientID string, ch Channel) {
	r.mu.RLock()
	set, ok := r.recipients[recipientID]
	r.mu.RUnlock()
	if !ok {
		return
	}

	set.mu.Lock()
	delete(set.conns, ch)
	empty := len(set.conns) == 0
	set.mu.Unlock()

	if empty {
		r.dropIfEmpty(recipientID, set)
	}
}

// Push sends payload to every live channel of the recipient and returns how
// many deliveries succeeded. Channels whose Send fails are closed and
// removed so dead connections do not accumulate. A recipient with no
// channels yields zero without error.
func (r *Registry) Push(recipientID string, payload []byte) int {
	r.mu.RLock()
	set, ok := r.recipients[recipientID]
	r.mu.RUnlock()
	if !ok {
		return 0
	}

	set.mu.Lock()
	delivered := 0
	var dead []Channel
	for ch := range set.conns {
		if err := ch.Send(payload); err != nil {
			dead = append(dead, ch)
			continue
		}
		delivered++
	}
	for _, ch := range dead {
		delete(set.conns, ch)
	}
	empty := len(set.conns) == 0
	set.mu.Unlock()

	for _, ch := range dead {
		ch.Close()
	}
	if empty {
		r.dropIfEmpty(recipientID, set)
	}
	return delivered
}

// ConnectionCount reports the number of live channels for the recipient.
func (r *Registry) ConnectionCount(recipientID string) int {
	r.mu.RLock()
	set, ok := r.recipients[recipientID]
	r.mu.RUnlock()
	if !ok {
		return 0
	}

	set.mu.Lock()
	n := len(set.conns)
	set.mu.Unlock()
	return n
}

// dropIfEmpty removes the recipient entry unless a concurrent Register put
// a channel back in the meantime.
func (r *Registry) dropIfEmpty(recipientID string, set *connSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.recipients[recipientID]
	if !ok || current != set {
		return
	}
	set.mu.Lock()
	empty := len(set.conns) == 0
	set.mu.Unlock()
	if empty {
		delete(r.recipients, recipientID)
	}
}
