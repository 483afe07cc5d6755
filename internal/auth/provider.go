package auth

import (
	"sync"

	"planner/internal/model"
)

// Provider tracks the current authenticated principal and fans state
// changes out to subscribers. Subscribers receive the current value
// immediately on subscribe and again on every change; a nil principal
// means signed out.
type Provider struct {
	mu      sync.Mutex
	current *model.Principal
	subs    map[int]func(*model.Principal)
	nextID  int
}

func NewProvider() *Provider {
	return &Provider{subs: make(map[int]func(*model.Principal))}
}

// Set replaces the current principal and notifies every subscriber.
func (p *Provider) Set(principal *model.Principal) {
	p.mu.Lock()
	p.current = principal
	callbacks := make([]func(*model.Principal), 0, len(p.subs))
	for _, cb := range p.subs {
		callbacks = append(callbacks, cb)
	}
	p.mu.Unlock()

	for _, cb := range callbacks {
		cb(principal)
	}
}

// Current returns the last-known principal, nil when signed out.
func (p *Provider) Current() *model.Principal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Subscribe registers cb and delivers the current state to it at once.
// The returned function removes the subscription.
func (p *Provider) Subscribe(cb func(*model.Principal)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = cb
	current := p.current
	p.mu.Unlock()

	cb(current)

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}
