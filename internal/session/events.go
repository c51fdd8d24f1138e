package session

import "github.com/xolan/daylog/internal/supabase"

// Event is an auth state change.
type Event string

const (
	EventSignedIn         Event = "SIGNED_IN"
	EventSignedOut        Event = "SIGNED_OUT"
	EventPasswordRecovery Event = "PASSWORD_RECOVERY"
	EventUserUpdated      Event = "USER_UPDATED"
	EventTokenRefreshed   Event = "TOKEN_REFRESHED"
)

// Listener receives auth state changes. s is nil on sign out.
type Listener func(ev Event, s *supabase.Session)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it.
func (g *Gateway) Subscribe(l Listener) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextListener
	g.nextListener++
	g.listeners = append(g.listeners, subscription{id: id, fn: l})
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		for i, sub := range g.listeners {
			if sub.id == id {
				g.listeners = append(g.listeners[:i:i], g.listeners[i+1:]...)
				return
			}
		}
	}
}

// publish calls every listener. It must not be called with g.mu held.
func (g *Gateway) publish(ev Event, s *supabase.Session) {
	g.mu.Lock()
	subs := append([]subscription(nil), g.listeners...)
	g.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ev, s)
	}
}
