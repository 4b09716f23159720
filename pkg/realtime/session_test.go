package realtime

import (
	"QR-Ordering-Backend/domain"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ack(t *testing.T, hub *Hub, c *Client, raw string) Ack {
	t.Helper()
	var env struct {
		Event string `json:"event"`
		Data  Ack    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(hub.HandleFrame(c, []byte(raw)), &env))
	assert.Equal(t, "ack", env.Event)
	return env.Data
}

func TestHandleFrameRoleRooms(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		request     string
		wantSuccess bool
		room        Room
	}{
		{"kitchenJoinsKitchen", domain.RoleKitchen, RequestJoinKitchen, true, RoomKitchen},
		{"adminJoinsKitchen", domain.RoleAdmin, RequestJoinKitchen, true, RoomKitchen},
		{"waiterJoinsWaiter", domain.RoleWaiter, RequestJoinWaiter, true, RoomWaiter},
		{"adminJoinsAdmin", domain.RoleAdmin, RequestJoinAdmin, true, RoomAdmin},
		{"waiterCannotJoinKitchen", domain.RoleWaiter, RequestJoinKitchen, false, RoomKitchen},
		{"kitchenCannotJoinAdmin", domain.RoleKitchen, RequestJoinAdmin, false, RoomAdmin},
		{"guestCannotJoinWaiter", "", RequestJoinWaiter, false, RoomWaiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := NewHub()
			c := NewClient(tt.role)
			hub.Register(c)

			got := ack(t, hub, c, `{"event":"`+tt.request+`"}`)
			assert.Equal(t, tt.wantSuccess, got.Success)
			assert.Equal(t, tt.request, got.Request)
			assert.NotEmpty(t, got.Message)

			want := 0
			if tt.wantSuccess {
				want = 1
			}
			assert.Equal(t, want, hub.Members(tt.room))
		})
	}
}

func TestHandleFrameOrderRoom(t *testing.T) {
	hub := NewHub()
	c := NewClient("")
	hub.Register(c)
	const orderID = "6f1c7a8e-0b8e-4a53-9d7f-2b1c9e0c2a11"

	got := ack(t, hub, c, `{"event":"join:order","data":{"orderId":"`+orderID+`"}}`)
	assert.True(t, got.Success)
	assert.Equal(t, 1, hub.Members(OrderRoom(orderID)))

	got = ack(t, hub, c, `{"event":"leave:order","data":{"orderId":"`+orderID+`"}}`)
	assert.True(t, got.Success)
	assert.Equal(t, 0, hub.Members(OrderRoom(orderID)))

	got = ack(t, hub, c, `{"event":"join:order","data":{"orderId":"nope"}}`)
	assert.False(t, got.Success)
}

func TestHandleFrameRejectsGarbage(t *testing.T) {
	hub := NewHub()
	c := NewClient(domain.RoleAdmin)
	hub.Register(c)

	assert.False(t, ack(t, hub, c, `not json`).Success)
	assert.False(t, ack(t, hub, c, `{"event":"join:everything"}`).Success)
}
