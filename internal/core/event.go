package core

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventRegistered confirms a register command to its sender.
	EventRegistered EventKind = iota
	// EventCallInvite rings the invited user.
	EventCallInvite
	// EventCallFailed tells the caller the target is offline.
	EventCallFailed
	// EventCallAccepted tells the inviter the call was taken.
	EventCallAccepted
	// EventCallRejected tells the inviter the call was declined.
	EventCallRejected
	// EventCallEnded tells a party the other side hung up.
	EventCallEnded
	// EventOnlineUsers delivers the registered-user snapshot.
	EventOnlineUsers
	// EventRoomCreated announces a new room to everyone.
	EventRoomCreated
	// EventRoomJoinFailed reports a failed join to the requester.
	EventRoomJoinFailed
	// EventRoomJoined confirms a join with the full room snapshot.
	EventRoomJoined
	// EventRoomParticipantJoined notifies members of a new participant.
	EventRoomParticipantJoined
	// EventRoomParticipantLeft notifies members of a departure.
	EventRoomParticipantLeft
	// EventRoomClosed tells participants their room was closed.
	EventRoomClosed
	// EventAvailableRooms delivers the joinable-rooms listing.
	EventAvailableRooms
	// EventInviteFailed reports a failed invitation to the inviter.
	EventInviteFailed
	// EventRoomInvitation delivers a room invitation to the invitee.
	EventRoomInvitation
	// EventInvitationDeclined tells the inviter their invite was declined.
	EventInvitationDeclined
	// EventClassInvitation delivers a class invitation to the student.
	EventClassInvitation
	// EventClassInvitationAccepted tells the teacher a student accepted.
	EventClassInvitationAccepted
	// EventClassInvitationRejected tells the teacher a student declined.
	EventClassInvitationRejected
	// EventLessonInvitation delivers a lesson invitation to a student.
	EventLessonInvitation
	// EventLessonInvitationsSent summarizes a lesson invite batch.
	EventLessonInvitationsSent
	// EventLessonInvitationAccepted tells the teacher a student accepted.
	EventLessonInvitationAccepted
	// EventLessonInvitationRejected tells the teacher a student declined.
	EventLessonInvitationRejected
	// EventRemovedFromRoom tells a kicked user they were removed.
	EventRemovedFromRoom
	// EventRemoveFailed reports a failed kick to the requester.
	EventRemoveFailed
)

// CallEvent holds data specific to call events.
type CallEvent struct {
	From    string
	To      string
	Channel string
	Reason  string // call_failed, call_rejected
	Target  string // call_failed: who was unreachable
}

// RoomEvent holds data for room lifecycle and membership events.
type RoomEvent struct {
	Room            *Room // room_created, room_joined (snapshot)
	RoomID          string
	Participant     string
	ParticipantName string
	RemoverID       string // removed_from_room
	Reason          string // room_join_failed, remove_failed
}

// InviteEvent holds data for room invitation events.
type InviteEvent struct {
	RoomID      string
	RoomName    string
	InviterID   string
	InviterName string
	DeclinedID  string // invitation_declined
	Reason      string // invite_failed
	Target      string // invite_failed: who was unreachable
}

// ClassEvent holds data for class invitation events.
type ClassEvent struct {
	ClassID     string
	Name        string
	Level       string
	Description string
	TeacherID   string
	TeacherName string
	StudentID   string // accepted/rejected notices
}

// LessonEvent holds data for lesson invitation events.
type LessonEvent struct {
	ClassID        string
	LessonName     string
	TeacherID      string
	TeacherName    string
	StudentID      string
	StudentName    string
	TotalSent      int
	TotalFailed    int
	FailedStudents []string
}

// Event is sent to clients to describe what happened in the system.
// The payload pointer matching Kind is set; the rest are nil.
type Event struct {
	Kind EventKind

	UserID string   // registered
	Users  []string // online_users
	Rooms  []RoomSummary

	Call   *CallEvent
	Room   *RoomEvent
	Invite *InviteEvent
	Class  *ClassEvent
	Lesson *LessonEvent
}
