package registry

import (
	"errors"
	"sync"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
)

var (
	ErrNameTaken        = errors.New("display name already taken")
	ErrConnectionJoined = errors.New("connection already joined")
)

// Registry is the authoritative in-memory set of current participants. All
// mutation and observation happens under one mutex so a snapshot can never
// see a half-applied change.
type Registry struct {
	mu     sync.Mutex
	byName map[string]*domain.Participant
	byConn map[string]*domain.Participant
	order  []*domain.Participant
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*domain.Participant),
		byConn: make(map[string]*domain.Participant),
	}
}

// Admit claims a normalized display name for a connection. The check and the
// insert run under the same lock, so two connections racing for one name can
// never both succeed.
func (r *Registry) Admit(connectionID string, name string) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byConn[connectionID]; ok {
		return nil, ErrConnectionJoined
	}
	if _, ok := r.byName[name]; ok {
		return nil, ErrNameTaken
	}

	participant := domain.NewParticipant(connectionID, name)
	r.byName[name] = participant
	r.byConn[connectionID] = participant
	r.order = append(r.order, participant)

	return participant, nil
}

// Remove releases the name held by a connection. Removing a connection that
// holds nothing is a no-op.
func (r *Registry) Remove(connectionID string) (*domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.byConn[connectionID]
	if !ok {
		return nil, false
	}

	delete(r.byConn, connectionID)
	delete(r.byName, participant.Name)

	for i, p := range r.order {
		if p.ConnectionID == connectionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return participant, true
}

// Lookup resolves the participant a connection currently is, if any.
func (r *Registry) Lookup(connectionID string) (*domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.byConn[connectionID]
	return participant, ok
}

// Snapshot returns the current participants in join order.
func (r *Registry) Snapshot() []*domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Participant, len(r.order))
	copy(result, r.order)
	return result
}
