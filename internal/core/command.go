package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandRegister binds the sender's user id to its connection.
	CommandRegister CommandKind = iota
	// CommandCallInvite asks to ring another user.
	CommandCallInvite
	// CommandCallAccept tells the inviter the call was taken.
	CommandCallAccept
	// CommandCallReject tells the inviter the call was declined.
	CommandCallReject
	// CommandCallEnd hangs up on both sides.
	CommandCallEnd
	// CommandGetOnlineUsers requests the registered-user snapshot.
	CommandGetOnlineUsers
	// CommandRoomCreated stores a fully-formed room and announces it.
	CommandRoomCreated
	// CommandJoinRoom requests membership in a room.
	CommandJoinRoom
	// CommandLeaveRoom removes the sender from a room.
	CommandLeaveRoom
	// CommandCloseRoom evicts everyone and deletes the room.
	CommandCloseRoom
	// CommandGetAvailableRooms requests the joinable-rooms listing.
	CommandGetAvailableRooms
	// CommandInviteToRoom invites a single user into a room.
	CommandInviteToRoom
	// CommandDeclineInvitation reports a declined room invitation.
	CommandDeclineInvitation
	// CommandClassInvite invites a student to a class.
	CommandClassInvite
	// CommandClassAccept reports an accepted class invitation.
	CommandClassAccept
	// CommandClassReject reports a rejected class invitation.
	CommandClassReject
	// CommandInviteToLesson invites a batch of students to a lesson.
	CommandInviteToLesson
	// CommandAcceptLesson reports an accepted lesson invitation.
	CommandAcceptLesson
	// CommandRejectLesson reports a rejected lesson invitation.
	CommandRejectLesson
	// CommandRemoveFromRoom kicks a participant (creator only).
	CommandRemoveFromRoom
)

// CallData carries the two parties of a call exchange. Channel is the
// media channel name and may be empty; the hub substitutes a default.
type CallData struct {
	From    string
	To      string
	Channel string
}

// JoinRoomData is a request to join a room.
type JoinRoomData struct {
	RoomID   string
	UserID   string
	UserName string
}

// LeaveRoomData is a request to leave a room.
type LeaveRoomData struct {
	RoomID string
	UserID string
}

// CloseRoomData closes a room on behalf of the requester.
type CloseRoomData struct {
	RoomID      string
	RequesterID string
}

// RoomInviteData is a direct invitation into a group room.
type RoomInviteData struct {
	RoomID      string
	RoomName    string
	InvitedID   string
	InviterID   string
	InviterName string
}

// DeclineData reports a declined room invitation back to the inviter.
type DeclineData struct {
	RoomID     string
	InviterID  string
	DeclinedID string
}

// ClassInfo is the descriptive payload attached to a class invitation.
type ClassInfo struct {
	ID          string
	Name        string
	Level       string
	Description string
	TeacherName string
}

// ClassInviteData invites a single student to a class.
type ClassInviteData struct {
	To    string
	From  string
	Class ClassInfo
}

// ClassReplyData is a student's accept/reject of a class invitation.
type ClassReplyData struct {
	To      string
	From    string
	ClassID string
}

// LessonInviteData invites a list of students to a lesson.
type LessonInviteData struct {
	ClassID    string
	StudentIDs []string
	TeacherID  string
	LessonName string
}

// LessonReplyData is a student's accept/reject of a lesson invitation.
type LessonReplyData struct {
	ClassID   string
	TeacherID string
	StudentID string
}

// RemoveData kicks a participant out of a room.
type RemoveData struct {
	RoomID    string
	RemovedID string
	RemoverID string
}

// Command represents an action requested by a client. Exactly one of
// the payload pointers matching Kind is set.
type Command struct {
	Kind CommandKind

	UserID      string // CommandRegister
	Call        *CallData
	Room        *Room
	Join        *JoinRoomData
	Leave       *LeaveRoomData
	Close       *CloseRoomData
	Invite      *RoomInviteData
	Decline     *DeclineData
	Class       *ClassInviteData
	ClassReply  *ClassReplyData
	Lesson      *LessonInviteData
	LessonReply *LessonReplyData
	Remove      *RemoveData
}
