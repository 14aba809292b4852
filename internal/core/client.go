package core

// Client is one live connection as seen by the hub. The transport layer
// creates a client per WebSocket, pushes decoded commands into Commands
// and drains Events back onto the wire.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// closed by the hub when the client unregisters; stops the command pump
	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
		done:     make(chan struct{}),
	}
}

// send delivers an event without blocking. A slow or dead consumer
// loses the event; delivery is best-effort by contract.
func (c *Client) send(ev *Event) {
	select {
	case c.Events <- ev:
	default:
	}
}
