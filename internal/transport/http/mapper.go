package http

import (
	"encoding/json"
	"time"

	"github.com/linguameet/gateway/internal/core"
	"github.com/linguameet/gateway/internal/proto"
)

// inboundToCommand decodes a wire envelope into a core command. A
// malformed payload yields a protocol error for the sender; an unknown
// type is rejected the same way.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	badRequest := func(msg string) (*core.Command, *proto.Error, error) {
		return nil, &proto.Error{Code: "bad_request", Msg: msg}, nil
	}

	switch inbound.Type {
	case proto.InRegister:
		var reg proto.RegisterData
		if err := json.Unmarshal(inbound.Data, &reg); err != nil {
			// The original accepted a bare string payload as well.
			var userID string
			if err2 := json.Unmarshal(inbound.Data, &userID); err2 != nil {
				return nil, nil, err
			}
			reg.UserID = userID
		}
		if reg.UserID == "" {
			return badRequest("userId is required")
		}
		return &core.Command{Kind: core.CommandRegister, UserID: reg.UserID}, nil, nil

	case proto.InCallInvite, proto.InCallAccept, proto.InCallReject, proto.InCallEnd:
		var call proto.CallData
		if err := json.Unmarshal(inbound.Data, &call); err != nil {
			return nil, nil, err
		}
		if call.From == "" || call.To == "" {
			return badRequest("from and to are required")
		}
		kind := map[string]core.CommandKind{
			proto.InCallInvite: core.CommandCallInvite,
			proto.InCallAccept: core.CommandCallAccept,
			proto.InCallReject: core.CommandCallReject,
			proto.InCallEnd:    core.CommandCallEnd,
		}[inbound.Type]
		return &core.Command{
			Kind: kind,
			Call: &core.CallData{From: call.From, To: call.To, Channel: call.ChannelName},
		}, nil, nil

	case proto.InGetOnlineUsers:
		return &core.Command{Kind: core.CommandGetOnlineUsers}, nil, nil

	case proto.InRoomCreated:
		var rc proto.RoomCreatedData
		if err := json.Unmarshal(inbound.Data, &rc); err != nil {
			return nil, nil, err
		}
		if rc.Room.ID == "" {
			return badRequest("room.id is required")
		}
		createdAt := time.Unix(rc.Room.CreatedAt, 0)
		if rc.Room.CreatedAt == 0 {
			createdAt = time.Now()
		}
		participants := rc.Room.Participants
		if participants == nil {
			participants = []string{}
		}
		return &core.Command{
			Kind: core.CommandRoomCreated,
			Room: &core.Room{
				ID:              rc.Room.ID,
				Name:            rc.Room.Name,
				Creator:         rc.Room.Creator,
				Participants:    participants,
				MaxParticipants: rc.Room.MaxParticipants,
				CreatedAt:       createdAt,
			},
		}, nil, nil

	case proto.InJoinRoomRequest:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomID == "" || join.UserID == "" {
			return badRequest("roomId and userId are required")
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Join: &core.JoinRoomData{RoomID: join.RoomID, UserID: join.UserID, UserName: join.UserName},
		}, nil, nil

	case proto.InLeaveRoom:
		var leave proto.LeaveRoomData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, nil, err
		}
		if leave.RoomID == "" || leave.UserID == "" {
			return badRequest("roomId and userId are required")
		}
		return &core.Command{
			Kind:  core.CommandLeaveRoom,
			Leave: &core.LeaveRoomData{RoomID: leave.RoomID, UserID: leave.UserID},
		}, nil, nil

	case proto.InRoomClosed:
		var cls proto.CloseRoomData
		if err := json.Unmarshal(inbound.Data, &cls); err != nil {
			return nil, nil, err
		}
		if cls.RoomID == "" {
			return badRequest("roomId is required")
		}
		return &core.Command{
			Kind:  core.CommandCloseRoom,
			Close: &core.CloseRoomData{RoomID: cls.RoomID, RequesterID: cls.Creator},
		}, nil, nil

	case proto.InGetAvailableRooms:
		return &core.Command{Kind: core.CommandGetAvailableRooms}, nil, nil

	case proto.InInviteToRoom:
		var inv proto.InviteToRoomData
		if err := json.Unmarshal(inbound.Data, &inv); err != nil {
			return nil, nil, err
		}
		if inv.RoomID == "" || inv.InvitedUserID == "" {
			return badRequest("roomId and invitedUserId are required")
		}
		return &core.Command{
			Kind: core.CommandInviteToRoom,
			Invite: &core.RoomInviteData{
				RoomID:      inv.RoomID,
				RoomName:    inv.RoomName,
				InvitedID:   inv.InvitedUserID,
				InviterID:   inv.InviterUserID,
				InviterName: inv.InviterName,
			},
		}, nil, nil

	case proto.InInvitationDeclined:
		var dec proto.InvitationDeclinedData
		if err := json.Unmarshal(inbound.Data, &dec); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandDeclineInvitation,
			Decline: &core.DeclineData{
				RoomID:     dec.RoomID,
				InviterID:  dec.InviterUserID,
				DeclinedID: dec.DeclinedUserID,
			},
		}, nil, nil

	case proto.InClassInvite:
		var inv proto.ClassInviteData
		if err := json.Unmarshal(inbound.Data, &inv); err != nil {
			return nil, nil, err
		}
		if inv.To == "" || inv.From == "" {
			return badRequest("from and to are required")
		}
		return &core.Command{
			Kind: core.CommandClassInvite,
			Class: &core.ClassInviteData{
				To:   inv.To,
				From: inv.From,
				Class: core.ClassInfo{
					ID:          inv.ClassData.ID,
					Name:        inv.ClassData.Name,
					Level:       inv.ClassData.Level,
					Description: inv.ClassData.Description,
					TeacherName: inv.ClassData.TeacherName,
				},
			},
		}, nil, nil

	case proto.InClassAccept, proto.InClassReject:
		var reply proto.ClassReplyData
		if err := json.Unmarshal(inbound.Data, &reply); err != nil {
			return nil, nil, err
		}
		kind := core.CommandClassAccept
		if inbound.Type == proto.InClassReject {
			kind = core.CommandClassReject
		}
		return &core.Command{
			Kind:       kind,
			ClassReply: &core.ClassReplyData{To: reply.To, From: reply.From, ClassID: reply.ClassID},
		}, nil, nil

	case proto.InInviteToLesson:
		var inv proto.InviteToLessonData
		if err := json.Unmarshal(inbound.Data, &inv); err != nil {
			return nil, nil, err
		}
		if inv.TeacherID == "" {
			return badRequest("teacherId is required")
		}
		return &core.Command{
			Kind: core.CommandInviteToLesson,
			Lesson: &core.LessonInviteData{
				ClassID:    inv.ClassID,
				StudentIDs: inv.StudentIDs,
				TeacherID:  inv.TeacherID,
				LessonName: inv.LessonName,
			},
		}, nil, nil

	case proto.InAcceptLesson, proto.InRejectLesson:
		var reply proto.LessonReplyData
		if err := json.Unmarshal(inbound.Data, &reply); err != nil {
			return nil, nil, err
		}
		kind := core.CommandAcceptLesson
		if inbound.Type == proto.InRejectLesson {
			kind = core.CommandRejectLesson
		}
		return &core.Command{
			Kind: kind,
			LessonReply: &core.LessonReplyData{
				ClassID:   reply.ClassID,
				TeacherID: reply.TeacherID,
				StudentID: reply.StudentID,
			},
		}, nil, nil

	case proto.InRemoveFromRoom:
		var rem proto.RemoveFromRoomData
		if err := json.Unmarshal(inbound.Data, &rem); err != nil {
			return nil, nil, err
		}
		if rem.RoomID == "" || rem.RemovedUserID == "" {
			return badRequest("roomId and removedUserId are required")
		}
		return &core.Command{
			Kind: core.CommandRemoveFromRoom,
			Remove: &core.RemoveData{
				RoomID:    rem.RoomID,
				RemovedID: rem.RemovedUserID,
				RemoverID: rem.RemoverUserID,
			},
		}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func wireRoom(r *core.Room) proto.Room {
	return proto.Room{
		ID:              r.ID,
		Name:            r.Name,
		Creator:         r.Creator,
		Participants:    r.Participants,
		MaxParticipants: r.MaxParticipants,
		CreatedAt:       r.CreatedAt.Unix(),
	}
}

func wireSummaries(rooms []core.RoomSummary) []proto.RoomSummary {
	out := make([]proto.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, proto.RoomSummary{
			ID:           r.ID,
			Name:         r.Name,
			Participants: r.Participants,
			Creator:      r.Creator,
		})
	}
	return out
}

func event(name string, data any) proto.Outbound {
	return proto.Outbound{Type: "event", Event: name, Data: data}
}

// outboundFromEvent encodes a core event for the wire.
func outboundFromEvent(ev *core.Event) proto.Outbound {
	switch ev.Kind {
	case core.EventRegistered:
		return event(proto.OutRegistered, proto.EventRegistered{Success: true, UserID: ev.UserID})
	case core.EventCallInvite:
		return event(proto.OutCallInvite, proto.EventCallInvite{
			From: ev.Call.From, To: ev.Call.To, ChannelName: ev.Call.Channel,
		})
	case core.EventCallFailed:
		return event(proto.OutCallFailed, proto.EventCallFailed{
			Reason: ev.Call.Reason, TargetUser: ev.Call.Target,
		})
	case core.EventCallAccepted:
		return event(proto.OutCallAccept, proto.EventCallInvite{
			From: ev.Call.From, To: ev.Call.To, ChannelName: ev.Call.Channel,
		})
	case core.EventCallRejected:
		return event(proto.OutCallReject, proto.EventCallReject{
			From: ev.Call.From, To: ev.Call.To, Reason: ev.Call.Reason,
		})
	case core.EventCallEnded:
		return event(proto.OutCallEnded, proto.EventCallEnded{From: ev.Call.From})
	case core.EventOnlineUsers:
		return event(proto.OutOnlineUsers, proto.EventOnlineUsers{Users: ev.Users})
	case core.EventRoomCreated:
		return event(proto.OutRoomCreated, proto.EventRoomCreated{Room: wireRoom(ev.Room.Room)})
	case core.EventRoomJoinFailed:
		return event(proto.OutRoomJoinFailed, proto.EventRoomJoinFailed{
			RoomID: ev.Room.RoomID, Reason: ev.Room.Reason,
		})
	case core.EventRoomJoined:
		return event(proto.OutRoomJoined, proto.EventRoomJoined{Room: wireRoom(ev.Room.Room)})
	case core.EventRoomParticipantJoined:
		return event(proto.OutParticipantJoined, proto.EventParticipantJoined{
			Participant: ev.Room.Participant, ParticipantName: ev.Room.ParticipantName,
		})
	case core.EventRoomParticipantLeft:
		return event(proto.OutParticipantLeft, proto.EventParticipantLeft{Participant: ev.Room.Participant})
	case core.EventRoomClosed:
		return event(proto.OutRoomClosed, proto.EventRoomClosed{RoomID: ev.Room.RoomID})
	case core.EventAvailableRooms:
		return event(proto.OutAvailableRooms, proto.EventAvailableRooms{Rooms: wireSummaries(ev.Rooms)})
	case core.EventInviteFailed:
		return event(proto.OutInviteFailed, proto.EventInviteFailed{
			Reason: ev.Invite.Reason, RoomID: ev.Invite.RoomID, TargetUser: ev.Invite.Target,
		})
	case core.EventRoomInvitation:
		return event(proto.OutRoomInvitation, proto.EventRoomInvitation{
			RoomID:        ev.Invite.RoomID,
			RoomName:      ev.Invite.RoomName,
			InviterUserID: ev.Invite.InviterID,
			InviterName:   ev.Invite.InviterName,
		})
	case core.EventInvitationDeclined:
		return event(proto.OutInvitationDeclined, proto.EventInvitationDeclined{
			RoomID: ev.Invite.RoomID, DeclinedUserID: ev.Invite.DeclinedID,
		})
	case core.EventClassInvitation:
		return event(proto.OutClassInvitation, proto.EventClassInvitation{
			ClassID:          ev.Class.ClassID,
			ClassName:        ev.Class.Name,
			ClassLevel:       ev.Class.Level,
			ClassDescription: ev.Class.Description,
			TeacherID:        ev.Class.TeacherID,
			TeacherName:      ev.Class.TeacherName,
		})
	case core.EventClassInvitationAccepted:
		return event(proto.OutClassInviteAccepted, proto.EventClassReply{
			ClassID: ev.Class.ClassID, StudentID: ev.Class.StudentID,
		})
	case core.EventClassInvitationRejected:
		return event(proto.OutClassInviteRejected, proto.EventClassReply{
			ClassID: ev.Class.ClassID, StudentID: ev.Class.StudentID,
		})
	case core.EventLessonInvitation:
		return event(proto.OutLessonInvitation, proto.EventLessonInvitation{
			ClassID:     ev.Lesson.ClassID,
			LessonName:  ev.Lesson.LessonName,
			TeacherID:   ev.Lesson.TeacherID,
			TeacherName: ev.Lesson.TeacherName,
		})
	case core.EventLessonInvitationsSent:
		return event(proto.OutLessonInvitesSent, proto.EventLessonInvitationsSent{
			TotalSent:      ev.Lesson.TotalSent,
			TotalFailed:    ev.Lesson.TotalFailed,
			FailedStudents: ev.Lesson.FailedStudents,
		})
	case core.EventLessonInvitationAccepted:
		return event(proto.OutLessonInviteAccepted, proto.EventLessonReply{
			ClassID: ev.Lesson.ClassID, StudentID: ev.Lesson.StudentID, StudentName: ev.Lesson.StudentName,
		})
	case core.EventLessonInvitationRejected:
		return event(proto.OutLessonInviteRejected, proto.EventLessonReply{
			ClassID: ev.Lesson.ClassID, StudentID: ev.Lesson.StudentID, StudentName: ev.Lesson.StudentName,
		})
	case core.EventRemovedFromRoom:
		return event(proto.OutRemovedFromRoom, proto.EventRemovedFromRoom{
			RoomID: ev.Room.RoomID, RemoverUserID: ev.Room.RemoverID,
		})
	case core.EventRemoveFailed:
		return event(proto.OutRemoveFailed, proto.EventRemoveFailed{Reason: ev.Room.Reason})
	default:
		return proto.Outbound{Type: "event"}
	}
}
