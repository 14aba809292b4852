package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/websocket/wsjson"

	"github.com/linguameet/gateway/internal/config"
	"github.com/linguameet/gateway/internal/proto"
)

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t, config.Config{})

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketRegisterAndCall(t *testing.T) {
	ts := startTestServer(t, config.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	sendEvent(t, ctx, connA, proto.InRegister, proto.RegisterData{UserID: "alice"})
	var regA proto.EventRegistered
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.OutRegistered), &regA); err != nil {
		t.Fatalf("unmarshal registered: %v", err)
	}
	if !regA.Success || regA.UserID != "alice" {
		t.Fatalf("unexpected registered payload: %+v", regA)
	}

	sendEvent(t, ctx, connB, proto.InRegister, proto.RegisterData{UserID: "bob"})
	readEvent(t, ctx, connB, proto.OutRegistered)

	sendEvent(t, ctx, connA, proto.InCallInvite, proto.CallData{From: "alice", To: "bob"})

	var invite proto.EventCallInvite
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.OutCallInvite), &invite); err != nil {
		t.Fatalf("unmarshal invite: %v", err)
	}
	if invite.From != "alice" || invite.To != "bob" || invite.ChannelName != "lesson_channel" {
		t.Fatalf("unexpected invite payload: %+v", invite)
	}

	sendEvent(t, ctx, connB, proto.InCallAccept, proto.CallData{From: "bob", To: "alice"})

	var accept proto.EventCallInvite
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.OutCallAccept), &accept); err != nil {
		t.Fatalf("unmarshal accept: %v", err)
	}
	if accept.From != "bob" {
		t.Fatalf("unexpected accept payload: %+v", accept)
	}
}

func TestWebSocketRoomFlow(t *testing.T) {
	ts := startTestServer(t, config.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	carol := dialWS(t, ctx, ts)
	dave := dialWS(t, ctx, ts)

	sendEvent(t, ctx, carol, proto.InRegister, proto.RegisterData{UserID: "carol"})
	readEvent(t, ctx, carol, proto.OutRegistered)
	sendEvent(t, ctx, dave, proto.InRegister, proto.RegisterData{UserID: "dave"})
	readEvent(t, ctx, dave, proto.OutRegistered)

	sendEvent(t, ctx, carol, proto.InRoomCreated, proto.RoomCreatedData{
		Room:    proto.Room{ID: "r1", Name: "conversation", Creator: "carol", MaxParticipants: 2},
		Creator: "carol",
	})

	// Both connections hear the broadcast.
	var created proto.EventRoomCreated
	if err := json.Unmarshal(readEvent(t, ctx, dave, proto.OutRoomCreated), &created); err != nil {
		t.Fatalf("unmarshal room_created: %v", err)
	}
	if created.Room.ID != "r1" {
		t.Fatalf("unexpected room broadcast: %+v", created.Room)
	}
	readEvent(t, ctx, carol, proto.OutRoomCreated)

	sendEvent(t, ctx, carol, proto.InJoinRoomRequest, proto.JoinRoomData{RoomID: "r1", UserID: "carol", UserName: "Carol"})
	var joined proto.EventRoomJoined
	if err := json.Unmarshal(readEvent(t, ctx, carol, proto.OutRoomJoined), &joined); err != nil {
		t.Fatalf("unmarshal room_joined: %v", err)
	}
	if len(joined.Room.Participants) != 1 || joined.Room.Participants[0] != "carol" {
		t.Fatalf("unexpected joined snapshot: %+v", joined.Room)
	}

	sendEvent(t, ctx, dave, proto.InJoinRoomRequest, proto.JoinRoomData{RoomID: "r1", UserID: "dave", UserName: "Dave"})
	readEvent(t, ctx, dave, proto.OutRoomJoined)

	var notice proto.EventParticipantJoined
	if err := json.Unmarshal(readEvent(t, ctx, carol, proto.OutParticipantJoined), &notice); err != nil {
		t.Fatalf("unmarshal participant notice: %v", err)
	}
	if notice.Participant != "dave" || notice.ParticipantName != "Dave" {
		t.Fatalf("unexpected participant notice: %+v", notice)
	}
}

func TestWebSocketRejectsMalformedEnvelope(t *testing.T) {
	ts := startTestServer(t, config.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)

	sendEvent(t, ctx, conn, "no_such_event", struct{}{})

	var frame outboundFrame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	if frame.Type != "error" || frame.Error == nil || frame.Error.Code != "invalid_message" {
		t.Fatalf("expected invalid_message error, got %+v", frame)
	}

	// The connection stays usable afterwards.
	sendEvent(t, ctx, conn, proto.InRegister, proto.RegisterData{UserID: "alice"})
	readEvent(t, ctx, conn, proto.OutRegistered)
}
