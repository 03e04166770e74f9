// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package guard

import "sync"

// Event is a navigation request published to subscribers.
type Event struct {
	To     Area
	Reason string
}

// Navigator is a small event bus between the session layer and whatever
// renders areas. Publishing never blocks on a missing subscriber.
type Navigator struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// NewNavigator creates an empty Navigator.
func NewNavigator() *Navigator {
	return &Navigator{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it.
func (n *Navigator) Subscribe(fn func(Event)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Navigate publishes a request to show area.
func (n *Navigator) Navigate(area Area, reason string) {
	n.mu.Lock()
	fns := make([]func(Event), 0, len(n.subs))
	for id := 0; id < n.nextID; id++ {
		if fn, ok := n.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	n.mu.Unlock()

	ev := Event{To: area, Reason: reason}
	for _, fn := range fns {
		fn(ev)
	}
}

// RedirectToLogin publishes a request to show the login area.
func (n *Navigator) RedirectToLogin(reason string) {
	n.Navigate(Login, reason)
}
