package core

import (
	"time"

	"github.com/samber/lo"
)

// Room is a group conference room. The id is supplied by the creating
// client; the hub stores whatever it is given and the last create wins.
type Room struct {
	ID              string
	Name            string
	Creator         string
	Participants    []string
	MaxParticipants int
	CreatedAt       time.Time
}

// RoomSummary is the shape published in available-rooms listings.
type RoomSummary struct {
	ID           string
	Name         string
	Participants int
	Creator      string
}

// Full reports whether the room is at capacity.
func (r *Room) Full() bool {
	return len(r.Participants) >= r.MaxParticipants
}

// HasParticipant reports whether userID is already a member.
func (r *Room) HasParticipant(userID string) bool {
	return lo.Contains(r.Participants, userID)
}

// AddParticipant appends userID. Callers check Full and HasParticipant
// first; the hub serializes those checks.
func (r *Room) AddParticipant(userID string) {
	r.Participants = append(r.Participants, userID)
}

// RemoveParticipant drops userID, preserving the order of the rest.
func (r *Room) RemoveParticipant(userID string) {
	r.Participants = lo.Filter(r.Participants, func(p string, _ int) bool {
		return p != userID
	})
}

// Empty returns true once the last participant has left.
func (r *Room) Empty() bool {
	return len(r.Participants) == 0
}

// Summary projects the room into its listing shape.
func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:           r.ID,
		Name:         r.Name,
		Participants: len(r.Participants),
		Creator:      r.Creator,
	}
}
