package core

// Failure reasons carried inside failure events. Every failure is local
// to the operation that hit it and is unicast back to the requester.
const (
	ReasonUserOffline      = "user_offline"
	ReasonUserDeclined     = "user_declined"
	ReasonRoomNotFound     = "room_not_found"
	ReasonRoomFull         = "room_full"
	ReasonAlreadyMember    = "already_member"
	ReasonPermissionDenied = "permission_denied"
)

// DefaultChannel is the media channel used when an invite omits one.
const DefaultChannel = "lesson_channel"
