package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client. Type is
// the event name; Data holds the event payload.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound event names.
const (
	InRegister           = "register"
	InCallInvite         = "call_invite"
	InCallAccept         = "call_accept"
	InCallReject         = "call_reject"
	InCallEnd            = "call_end"
	InGetOnlineUsers     = "get_online_users"
	InRoomCreated        = "room_created"
	InJoinRoomRequest    = "join_room_request"
	InLeaveRoom          = "leave_room"
	InRoomClosed         = "room_closed"
	InGetAvailableRooms  = "get_available_rooms"
	InInviteToRoom       = "invite_to_room"
	InInvitationDeclined = "invitation_declined"
	InClassInvite        = "class_invite"
	InClassAccept        = "class_accept"
	InClassReject        = "class_reject"
	InInviteToLesson     = "invite_to_lesson"
	InAcceptLesson       = "accept_lesson_invitation"
	InRejectLesson       = "reject_lesson_invitation"
	InRemoveFromRoom     = "remove_from_room"
)

// Outbound event names.
const (
	OutRegistered           = "registered"
	OutCallInvite           = "call_invite"
	OutCallFailed           = "call_failed"
	OutCallAccept           = "call_accept"
	OutCallReject           = "call_reject"
	OutCallEnded            = "call_ended"
	OutOnlineUsers          = "online_users"
	OutRoomCreated          = "room_created"
	OutRoomJoinFailed       = "room_join_failed"
	OutRoomJoined           = "room_joined"
	OutParticipantJoined    = "room_participant_joined"
	OutParticipantLeft      = "room_participant_left"
	OutRoomClosed           = "room_closed"
	OutAvailableRooms       = "available_rooms"
	OutInviteFailed         = "invite_failed"
	OutRoomInvitation       = "room_invitation"
	OutInvitationDeclined   = "invitation_declined"
	OutClassInvitation      = "class_invitation"
	OutClassInviteAccepted  = "class_invitation_accepted"
	OutClassInviteRejected  = "class_invitation_rejected"
	OutLessonInvitation     = "lesson_invitation"
	OutLessonInvitesSent    = "lesson_invitations_sent"
	OutLessonInviteAccepted = "lesson_invitation_accepted"
	OutLessonInviteRejected = "lesson_invitation_rejected"
	OutRemovedFromRoom      = "removed_from_room"
	OutRemoveFailed         = "remove_failed"
)

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Room is the wire shape of a group room.
type Room struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Creator         string   `json:"creator"`
	Participants    []string `json:"participants"`
	MaxParticipants int      `json:"maxParticipants"`
	CreatedAt       int64    `json:"createdAt"`
}

// RegisterData binds a user id to the sending connection.
type RegisterData struct {
	UserID string `json:"userId"`
}

// CallData carries the parties of a call exchange.
type CallData struct {
	From        string `json:"from"`
	To          string `json:"to"`
	ChannelName string `json:"channelName,omitempty"`
}

// RoomCreatedData wraps the fully-formed room supplied by its creator.
type RoomCreatedData struct {
	Room    Room   `json:"room"`
	Creator string `json:"creator"`
}

// JoinRoomData requests membership in a room.
type JoinRoomData struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// LeaveRoomData removes the user from a room.
type LeaveRoomData struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// CloseRoomData closes a room.
type CloseRoomData struct {
	RoomID  string `json:"roomId"`
	Creator string `json:"creator"`
}

// InviteToRoomData invites a single user into a room.
type InviteToRoomData struct {
	RoomID        string `json:"roomId"`
	RoomName      string `json:"roomName"`
	InvitedUserID string `json:"invitedUserId"`
	InviterUserID string `json:"inviterUserId"`
	InviterName   string `json:"inviterName"`
}

// InvitationDeclinedData reports a declined room invitation.
type InvitationDeclinedData struct {
	RoomID         string `json:"roomId"`
	InviterUserID  string `json:"inviterUserId"`
	DeclinedUserID string `json:"declinedUserId"`
}

// ClassData describes the class attached to a class invitation.
type ClassData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description"`
	TeacherName string `json:"teacherName"`
}

// ClassInviteData invites a student to a class.
type ClassInviteData struct {
	To        string    `json:"to"`
	From      string    `json:"from"`
	ClassData ClassData `json:"classData"`
}

// ClassReplyData is a student's accept/reject of a class invitation.
type ClassReplyData struct {
	To      string `json:"to"`
	From    string `json:"from"`
	ClassID string `json:"classId"`
}

// InviteToLessonData invites a batch of students to a lesson.
type InviteToLessonData struct {
	ClassID    string   `json:"classId"`
	StudentIDs []string `json:"studentIds"`
	TeacherID  string   `json:"teacherId"`
	LessonName string   `json:"lessonName"`
}

// LessonReplyData is a student's accept/reject of a lesson invitation.
type LessonReplyData struct {
	ClassID   string `json:"classId"`
	TeacherID string `json:"teacherId"`
	StudentID string `json:"studentId"`
}

// RemoveFromRoomData kicks a participant out of a room.
type RemoveFromRoomData struct {
	RoomID        string `json:"roomId"`
	RemovedUserID string `json:"removedUserId"`
	RemoverUserID string `json:"removerUserId"`
}

// EventRegistered confirms a successful registration.
type EventRegistered struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

// EventCallInvite rings the invited user.
type EventCallInvite struct {
	From        string `json:"from"`
	To          string `json:"to"`
	ChannelName string `json:"channelName"`
}

// EventCallFailed reports an unreachable call target.
type EventCallFailed struct {
	Reason     string `json:"reason"`
	TargetUser string `json:"targetUser"`
}

// EventCallReject reports a declined call to the inviter.
type EventCallReject struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// EventCallEnded tells one party the other hung up.
type EventCallEnded struct {
	From string `json:"from"`
}

// EventRoomCreated announces a stored room.
type EventRoomCreated struct {
	Room Room `json:"room"`
}

// EventRoomJoined confirms a join with the room snapshot.
type EventRoomJoined struct {
	Room Room `json:"room"`
}

// EventRoomJoinFailed reports a failed join.
type EventRoomJoinFailed struct {
	RoomID string `json:"roomId,omitempty"`
	Reason string `json:"reason"`
}

// EventParticipantJoined notifies members of a new participant.
type EventParticipantJoined struct {
	Participant     string `json:"participant"`
	ParticipantName string `json:"participantName"`
}

// EventParticipantLeft notifies members of a departure.
type EventParticipantLeft struct {
	Participant string `json:"participant"`
}

// EventRoomClosed tells participants their room is gone.
type EventRoomClosed struct {
	RoomID string `json:"roomId"`
}

// RoomSummary is one entry of an available-rooms listing.
type RoomSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Participants int    `json:"participants"`
	Creator      string `json:"creator"`
}

// EventAvailableRooms lists rooms open for joining.
type EventAvailableRooms struct {
	Rooms []RoomSummary `json:"rooms"`
}

// EventInviteFailed reports a failed invitation.
type EventInviteFailed struct {
	Reason     string `json:"reason"`
	RoomID     string `json:"roomId,omitempty"`
	TargetUser string `json:"targetUser,omitempty"`
}

// EventRoomInvitation delivers a room invitation to the invitee.
type EventRoomInvitation struct {
	RoomID        string `json:"roomId"`
	RoomName      string `json:"roomName"`
	InviterUserID string `json:"inviterUserId"`
	InviterName   string `json:"inviterName"`
}

// EventInvitationDeclined tells the inviter their invite was declined.
type EventInvitationDeclined struct {
	RoomID         string `json:"roomId"`
	DeclinedUserID string `json:"declinedUserId"`
}

// EventClassInvitation delivers a class invitation to a student.
type EventClassInvitation struct {
	ClassID          string `json:"classId"`
	ClassName        string `json:"className"`
	ClassLevel       string `json:"classLevel"`
	ClassDescription string `json:"classDescription"`
	TeacherID        string `json:"teacherId"`
	TeacherName      string `json:"teacherName"`
}

// EventClassReply reports a class invitation accept/reject to the teacher.
type EventClassReply struct {
	ClassID   string `json:"classId"`
	StudentID string `json:"studentId"`
}

// EventLessonInvitation delivers a lesson invitation to a student.
type EventLessonInvitation struct {
	ClassID     string `json:"classId"`
	LessonName  string `json:"lessonName"`
	TeacherID   string `json:"teacherId"`
	TeacherName string `json:"teacherName"`
}

// EventLessonInvitationsSent summarizes a lesson invite batch.
type EventLessonInvitationsSent struct {
	TotalSent      int      `json:"totalSent"`
	TotalFailed    int      `json:"totalFailed"`
	FailedStudents []string `json:"failedStudents"`
}

// EventLessonReply reports a lesson invitation accept/reject to the teacher.
type EventLessonReply struct {
	ClassID     string `json:"classId"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
}

// EventRemovedFromRoom tells a kicked user they were removed.
type EventRemovedFromRoom struct {
	RoomID        string `json:"roomId"`
	RemoverUserID string `json:"removerUserId"`
}

// EventRemoveFailed reports a failed kick.
type EventRemoveFailed struct {
	Reason string `json:"reason"`
}

// EventOnlineUsers lists currently registered user ids.
type EventOnlineUsers struct {
	Users []string `json:"users"`
}
