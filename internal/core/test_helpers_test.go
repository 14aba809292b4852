package core

import (
	"testing"
	"time"
)

// mustEvent waits for the next event of the given kind, discarding any
// others that arrive first.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent asserts that no event of the given kind arrives within a
// short window.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// registerUser binds a user id to the client and waits for the
// confirmation so later lookups are deterministic.
func registerUser(t *testing.T, c *Client, userID string) {
	t.Helper()

	c.Commands <- &Command{Kind: CommandRegister, UserID: userID}
	ev := mustEvent(t, c.Events, EventRegistered)
	if ev.UserID != userID {
		t.Fatalf("registered wrong user: got %q, want %q", ev.UserID, userID)
	}
}

// createRoom stores a room through the hub and waits for the broadcast
// on the creator's connection.
func createRoom(t *testing.T, c *Client, room *Room) {
	t.Helper()

	c.Commands <- &Command{Kind: CommandRoomCreated, Room: room}
	mustEvent(t, c.Events, EventRoomCreated)
}
