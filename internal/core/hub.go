package core

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// clientCommand pairs a decoded command with the connection it came from.
type clientCommand struct {
	client *Client
	cmd    *Command
}

// Hub owns the connection registry and the room collection. A single
// goroutine (Run) consumes every command, so room checks and mutations
// never race and per-room event order follows mutation order.
type Hub struct {
	log *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	// userID -> live connection; at most one entry per user,
	// last register wins.
	users map[string]*Client
	// every live connection, registered or not; broadcast targets.
	clients map[*Client]struct{}
	rooms   map[string]*Room
}

// NewHub creates a hub. A nil logger disables logging.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 64),
		users:      make(map[string]*Client),
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]*Room),
	}
}

// RegisterClient attaches a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a closed connection and evicts any user
// registration bound to it.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes connections and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(c)
			h.log.Debug().Str("conn_id", c.ID).Msg("connection opened")
		case c := <-h.unregister:
			h.dropClient(c)
		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one client's commands into the hub's single command
// stream. It exits when the client unregisters.
func (h *Hub) pump(c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

func (h *Hub) dropClient(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	close(c.done)
	delete(h.clients, c)
	// Reverse lookup by connection; the registry is small enough
	// that a scan beats keeping a second index in sync.
	for userID, client := range h.users {
		if client == c {
			delete(h.users, userID)
			h.log.Info().Str("user_id", userID).Msg("user disconnected")
			break
		}
	}
	h.log.Debug().Str("conn_id", c.ID).Msg("connection closed")
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandRegister:
		h.handleRegister(c, cmd.UserID)
	case CommandCallInvite:
		h.handleCallInvite(c, cmd.Call)
	case CommandCallAccept:
		h.handleCallAccept(cmd.Call)
	case CommandCallReject:
		h.handleCallReject(cmd.Call)
	case CommandCallEnd:
		h.handleCallEnd(cmd.Call)
	case CommandGetOnlineUsers:
		h.handleGetOnlineUsers(c)
	case CommandRoomCreated:
		h.handleRoomCreated(cmd.Room)
	case CommandJoinRoom:
		h.handleJoinRoom(c, cmd.Join)
	case CommandLeaveRoom:
		h.handleLeaveRoom(cmd.Leave)
	case CommandCloseRoom:
		h.handleCloseRoom(cmd.Close)
	case CommandGetAvailableRooms:
		c.send(&Event{Kind: EventAvailableRooms, Rooms: h.availableRooms()})
	case CommandInviteToRoom:
		h.handleInviteToRoom(c, cmd.Invite)
	case CommandDeclineInvitation:
		h.handleDeclineInvitation(cmd.Decline)
	case CommandClassInvite:
		h.handleClassInvite(c, cmd.Class)
	case CommandClassAccept:
		h.handleClassReply(cmd.ClassReply, EventClassInvitationAccepted)
	case CommandClassReject:
		h.handleClassReply(cmd.ClassReply, EventClassInvitationRejected)
	case CommandInviteToLesson:
		h.handleInviteToLesson(c, cmd.Lesson)
	case CommandAcceptLesson:
		h.handleLessonReply(cmd.LessonReply, EventLessonInvitationAccepted)
	case CommandRejectLesson:
		h.handleLessonReply(cmd.LessonReply, EventLessonInvitationRejected)
	case CommandRemoveFromRoom:
		h.handleRemoveFromRoom(c, cmd.Remove)
	}
}

// sendToUser delivers an event to a registered user's connection.
// Returns false when the user is offline; the event is then lost,
// never queued.
func (h *Hub) sendToUser(userID string, ev *Event) bool {
	c, ok := h.users[userID]
	if !ok {
		return false
	}
	c.send(ev)
	return true
}

// broadcast delivers an event to every live connection.
func (h *Hub) broadcast(ev *Event) {
	for c := range h.clients {
		c.send(ev)
	}
}

func (h *Hub) availableRooms() []RoomSummary {
	open := lo.Filter(lo.Values(h.rooms), func(r *Room, _ int) bool {
		return !r.Full()
	})
	return lo.Map(open, func(r *Room, _ int) RoomSummary {
		return r.Summary()
	})
}

func (h *Hub) handleRegister(c *Client, userID string) {
	h.users[userID] = c
	h.log.Info().Str("user_id", userID).Str("conn_id", c.ID).Msg("user registered")
	c.send(&Event{Kind: EventRegistered, UserID: userID})
}

func (h *Hub) handleCallInvite(c *Client, call *CallData) {
	channel := call.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	ev := &Event{
		Kind: EventCallInvite,
		Call: &CallEvent{From: call.From, To: call.To, Channel: channel},
	}
	if h.sendToUser(call.To, ev) {
		h.log.Info().Str("from", call.From).Str("to", call.To).Msg("call invite delivered")
		return
	}
	h.log.Warn().Str("from", call.From).Str("to", call.To).Msg("call target offline")
	c.send(&Event{
		Kind: EventCallFailed,
		Call: &CallEvent{Reason: ReasonUserOffline, Target: call.To},
	})
}

func (h *Hub) handleCallAccept(call *CallData) {
	channel := call.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	// If the inviter went offline the acceptance is dropped silently.
	delivered := h.sendToUser(call.To, &Event{
		Kind: EventCallAccepted,
		Call: &CallEvent{From: call.From, To: call.To, Channel: channel},
	})
	h.log.Info().Str("from", call.From).Str("to", call.To).Bool("delivered", delivered).Msg("call accepted")
}

func (h *Hub) handleCallReject(call *CallData) {
	delivered := h.sendToUser(call.To, &Event{
		Kind: EventCallRejected,
		Call: &CallEvent{From: call.From, To: call.To, Reason: ReasonUserDeclined},
	})
	h.log.Info().Str("from", call.From).Str("to", call.To).Bool("delivered", delivered).Msg("call rejected")
}

func (h *Hub) handleCallEnd(call *CallData) {
	// Each side learns who hung up from the other party's id.
	h.sendToUser(call.To, &Event{Kind: EventCallEnded, Call: &CallEvent{From: call.From}})
	h.sendToUser(call.From, &Event{Kind: EventCallEnded, Call: &CallEvent{From: call.To}})
	h.log.Info().Str("from", call.From).Str("to", call.To).Msg("call ended")
}

func (h *Hub) handleGetOnlineUsers(c *Client) {
	users := lo.Keys(h.users)
	c.send(&Event{Kind: EventOnlineUsers, Users: users})
	h.log.Debug().Int("count", len(users)).Msg("online users requested")
}

func (h *Hub) handleRoomCreated(room *Room) {
	h.rooms[room.ID] = room
	h.log.Info().Str("room_id", room.ID).Str("name", room.Name).Str("creator", room.Creator).Msg("room created")
	h.broadcast(&Event{Kind: EventRoomCreated, Room: &RoomEvent{Room: room}})
}

func (h *Hub) handleJoinRoom(c *Client, join *JoinRoomData) {
	room, ok := h.rooms[join.RoomID]
	if !ok {
		c.send(&Event{Kind: EventRoomJoinFailed, Room: &RoomEvent{RoomID: join.RoomID, Reason: ReasonRoomNotFound}})
		h.log.Warn().Str("room_id", join.RoomID).Str("user_id", join.UserID).Msg("join failed: room not found")
		return
	}
	if room.Full() {
		c.send(&Event{Kind: EventRoomJoinFailed, Room: &RoomEvent{RoomID: join.RoomID, Reason: ReasonRoomFull}})
		h.log.Warn().Str("room_id", join.RoomID).Str("user_id", join.UserID).Msg("join failed: room full")
		return
	}
	if room.HasParticipant(join.UserID) {
		c.send(&Event{Kind: EventRoomJoinFailed, Room: &RoomEvent{RoomID: join.RoomID, Reason: ReasonAlreadyMember}})
		h.log.Warn().Str("room_id", join.RoomID).Str("user_id", join.UserID).Msg("join failed: already member")
		return
	}

	room.AddParticipant(join.UserID)
	c.send(&Event{Kind: EventRoomJoined, Room: &RoomEvent{Room: room}})

	for _, participant := range room.Participants {
		if participant == join.UserID {
			continue
		}
		h.sendToUser(participant, &Event{
			Kind: EventRoomParticipantJoined,
			Room: &RoomEvent{RoomID: room.ID, Participant: join.UserID, ParticipantName: join.UserName},
		})
	}
	h.log.Info().Str("room_id", room.ID).Str("user_id", join.UserID).Int("participants", len(room.Participants)).Msg("user joined room")
}

func (h *Hub) handleLeaveRoom(leave *LeaveRoomData) {
	room, ok := h.rooms[leave.RoomID]
	if !ok {
		return
	}
	room.RemoveParticipant(leave.UserID)
	if room.Empty() {
		delete(h.rooms, leave.RoomID)
		h.log.Info().Str("room_id", leave.RoomID).Msg("room deleted (empty)")
		return
	}
	for _, participant := range room.Participants {
		h.sendToUser(participant, &Event{
			Kind: EventRoomParticipantLeft,
			Room: &RoomEvent{RoomID: room.ID, Participant: leave.UserID},
		})
	}
	h.log.Info().Str("room_id", room.ID).Str("user_id", leave.UserID).Msg("user left room")
}

func (h *Hub) handleCloseRoom(cls *CloseRoomData) {
	room, ok := h.rooms[cls.RoomID]
	if !ok {
		return
	}
	for _, participant := range room.Participants {
		h.sendToUser(participant, &Event{Kind: EventRoomClosed, Room: &RoomEvent{RoomID: room.ID}})
	}
	delete(h.rooms, cls.RoomID)
	h.broadcast(&Event{Kind: EventAvailableRooms, Rooms: h.availableRooms()})
	h.log.Info().Str("room_id", cls.RoomID).Str("requester", cls.RequesterID).Msg("room closed")
}

func (h *Hub) handleInviteToRoom(c *Client, inv *RoomInviteData) {
	room, ok := h.rooms[inv.RoomID]
	if !ok {
		c.send(&Event{Kind: EventInviteFailed, Invite: &InviteEvent{RoomID: inv.RoomID, Reason: ReasonRoomNotFound}})
		return
	}
	if room.Full() {
		c.send(&Event{Kind: EventInviteFailed, Invite: &InviteEvent{RoomID: inv.RoomID, Reason: ReasonRoomFull}})
		return
	}
	if room.HasParticipant(inv.InvitedID) {
		c.send(&Event{Kind: EventInviteFailed, Invite: &InviteEvent{RoomID: inv.RoomID, Reason: ReasonAlreadyMember}})
		return
	}

	delivered := h.sendToUser(inv.InvitedID, &Event{
		Kind: EventRoomInvitation,
		Invite: &InviteEvent{
			RoomID:      inv.RoomID,
			RoomName:    inv.RoomName,
			InviterID:   inv.InviterID,
			InviterName: inv.InviterName,
		},
	})
	if !delivered {
		c.send(&Event{Kind: EventInviteFailed, Invite: &InviteEvent{RoomID: inv.RoomID, Reason: ReasonUserOffline, Target: inv.InvitedID}})
		h.log.Warn().Str("room_id", inv.RoomID).Str("invited", inv.InvitedID).Msg("room invite failed: invitee offline")
		return
	}
	h.log.Info().Str("room_id", inv.RoomID).Str("inviter", inv.InviterID).Str("invited", inv.InvitedID).Msg("room invitation delivered")
}

func (h *Hub) handleDeclineInvitation(dec *DeclineData) {
	h.sendToUser(dec.InviterID, &Event{
		Kind:   EventInvitationDeclined,
		Invite: &InviteEvent{RoomID: dec.RoomID, DeclinedID: dec.DeclinedID},
	})
	h.log.Info().Str("room_id", dec.RoomID).Str("declined_by", dec.DeclinedID).Msg("room invitation declined")
}

func (h *Hub) handleClassInvite(c *Client, inv *ClassInviteData) {
	teacherName := inv.Class.TeacherName
	if teacherName == "" {
		teacherName = "Teacher"
	}
	delivered := h.sendToUser(inv.To, &Event{
		Kind: EventClassInvitation,
		Class: &ClassEvent{
			ClassID:     inv.Class.ID,
			Name:        inv.Class.Name,
			Level:       inv.Class.Level,
			Description: inv.Class.Description,
			TeacherID:   inv.From,
			TeacherName: teacherName,
		},
	})
	if !delivered {
		c.send(&Event{Kind: EventInviteFailed, Invite: &InviteEvent{Reason: ReasonUserOffline, Target: inv.To}})
		h.log.Warn().Str("class_id", inv.Class.ID).Str("to", inv.To).Msg("class invite failed: student offline")
		return
	}
	h.log.Info().Str("class_id", inv.Class.ID).Str("from", inv.From).Str("to", inv.To).Msg("class invitation delivered")
}

func (h *Hub) handleClassReply(reply *ClassReplyData, kind EventKind) {
	h.sendToUser(reply.To, &Event{
		Kind:  kind,
		Class: &ClassEvent{ClassID: reply.ClassID, StudentID: reply.From},
	})
	h.log.Info().Str("class_id", reply.ClassID).Str("student", reply.From).Msg("class invitation reply")
}

func (h *Hub) handleInviteToLesson(c *Client, inv *LessonInviteData) {
	reachable, offline := lo.FilterReject(inv.StudentIDs, func(id string, _ int) bool {
		_, ok := h.users[id]
		return ok
	})

	for _, studentID := range reachable {
		h.sendToUser(studentID, &Event{
			Kind: EventLessonInvitation,
			Lesson: &LessonEvent{
				ClassID:     inv.ClassID,
				LessonName:  inv.LessonName,
				TeacherID:   inv.TeacherID,
				TeacherName: "Teacher",
			},
		})
	}
	for _, studentID := range offline {
		c.send(&Event{Kind: EventInviteFailed, Invite: &InviteEvent{Reason: ReasonUserOffline, Target: studentID}})
	}
	c.send(&Event{
		Kind: EventLessonInvitationsSent,
		Lesson: &LessonEvent{
			TotalSent:      len(reachable),
			TotalFailed:    len(offline),
			FailedStudents: offline,
		},
	})
	h.log.Info().Str("class_id", inv.ClassID).Str("teacher", inv.TeacherID).
		Int("sent", len(reachable)).Int("failed", len(offline)).Msg("lesson invitations sent")
}

func (h *Hub) handleLessonReply(reply *LessonReplyData, kind EventKind) {
	h.sendToUser(reply.TeacherID, &Event{
		Kind:   kind,
		Lesson: &LessonEvent{ClassID: reply.ClassID, StudentID: reply.StudentID, StudentName: "Student"},
	})
	h.log.Info().Str("class_id", reply.ClassID).Str("student", reply.StudentID).Msg("lesson invitation reply")
}

func (h *Hub) handleRemoveFromRoom(c *Client, rem *RemoveData) {
	room, ok := h.rooms[rem.RoomID]
	if !ok {
		return
	}
	if room.Creator != rem.RemoverID {
		c.send(&Event{Kind: EventRemoveFailed, Room: &RoomEvent{RoomID: rem.RoomID, Reason: ReasonPermissionDenied}})
		h.log.Warn().Str("room_id", rem.RoomID).Str("remover", rem.RemoverID).Msg("kick denied: not room creator")
		return
	}

	room.RemoveParticipant(rem.RemovedID)
	h.sendToUser(rem.RemovedID, &Event{
		Kind: EventRemovedFromRoom,
		Room: &RoomEvent{RoomID: rem.RoomID, RemoverID: rem.RemoverID},
	})
	if room.Empty() {
		delete(h.rooms, rem.RoomID)
		h.log.Info().Str("room_id", rem.RoomID).Msg("room deleted (empty)")
	} else {
		for _, participant := range room.Participants {
			h.sendToUser(participant, &Event{
				Kind: EventRoomParticipantLeft,
				Room: &RoomEvent{RoomID: room.ID, Participant: rem.RemovedID},
			})
		}
	}
	h.log.Info().Str("room_id", rem.RoomID).Str("removed", rem.RemovedID).Str("remover", rem.RemoverID).Msg("user removed from room")
}
