package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/realtime"
	"github.com/bitmark-inc/roadside-api/schema"
)

func newConversation(requester, helper string) *schema.Conversation {
	return &schema.Conversation{
		ID:        primitive.NewObjectID(),
		RequestID: primitive.NewObjectID(),
		Requester: requester,
		Helper:    helper,
		Messages:  []schema.Message{},
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestUnreadCountAPI(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)
	ts.mongoStore.EXPECT().UnreadCount("alice").Return(int64(2), nil)

	w := ts.do(t, "GET", "/api/chat/unread-count", "alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"count":2}}`, w.Body.String())
}

func TestGetConversationOutsider(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)

	c := newConversation("alice", "bob")
	ts.mongoStore.EXPECT().GetConversation(c.ID).Return(c, nil).Times(2)

	w := ts.do(t, "GET", "/api/chat/conversations/"+c.ID.Hex(), "mallory", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, lifecycle.ErrNotParticipant.Message, decodeError(t, w).Message)

	w = ts.do(t, "GET", "/api/chat/conversations/"+c.ID.Hex(), "bob", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetOrCreateConversationAPI(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)

	r := pendingRequest("alice")
	ts.mongoStore.EXPECT().GetRequest(r.ID).Return(r, nil)
	ts.mongoStore.EXPECT().GetConversationByRequest(r.ID).Return(nil, lifecycle.ErrConversationNotFound)

	w := ts.do(t, "GET", "/api/chat/conversation/request/"+r.ID.Hex(), "alice", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, lifecycle.ErrNoHelperAssigned.Message, decodeError(t, w).Message)
}

func TestSendMessageAPI(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)

	c := newConversation("alice", "bob")
	ts.mongoStore.EXPECT().GetConversation(c.ID).Return(c, nil).AnyTimes()
	ts.mongoStore.EXPECT().AppendMessage(c.ID, gomock.Any()).Return(nil)

	bob := ts.server.hub.Connect("bob", "en")
	defer ts.server.hub.Disconnect(bob)

	w := ts.do(t, "POST", "/api/chat/conversation/"+c.ID.Hex()+"/messages", "alice", map[string]string{
		"content": "  on my way  ",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result schema.Message `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "on my way", resp.Result.Content)
	assert.Equal(t, "alice", resp.Result.Sender)
	assert.False(t, resp.Result.Read)

	select {
	case f := <-bob.Send():
		assert.Equal(t, realtime.EventMessageNotification, f.Event)
	default:
		t.Fatal("counterpart was not notified")
	}

	w = ts.do(t, "POST", "/api/chat/conversation/"+c.ID.Hex()+"/messages", "alice", map[string]string{
		"content": strings.Repeat("a", 1001),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, lifecycle.ErrMessageTooLong.Message, decodeError(t, w).Message)

	w = ts.do(t, "POST", "/api/chat/conversation/"+c.ID.Hex()+"/messages", "alice", map[string]string{
		"content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, lifecycle.ErrEmptyMessage.Message, decodeError(t, w).Message)
}

func TestSendMessageArchivedAPI(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)

	c := newConversation("alice", "bob")
	c.IsActive = false
	ts.mongoStore.EXPECT().GetConversation(c.ID).Return(c, nil)

	w := ts.do(t, "POST", "/api/chat/conversation/"+c.ID.Hex()+"/messages", "alice", map[string]string{
		"content": "anyone?",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, string(lifecycle.KindConflict), resp.Kind)
	assert.Equal(t, lifecycle.ErrConversationArchived.Message, resp.Message)
}

func TestMarkConversationReadAPI(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)

	c := newConversation("alice", "bob")
	ts.mongoStore.EXPECT().GetConversation(c.ID).Return(c, nil).Times(2)
	gomock.InOrder(
		ts.mongoStore.EXPECT().MarkConversationRead(c.ID, "bob").Return(int64(3), nil),
		ts.mongoStore.EXPECT().MarkConversationRead(c.ID, "bob").Return(int64(0), nil),
	)

	alice := ts.server.hub.Connect("alice", "en")
	defer ts.server.hub.Disconnect(alice)
	ts.server.hub.Join(alice, realtime.ConversationRoom(c.ID.Hex()))

	w := ts.do(t, "PATCH", "/api/chat/conversation/"+c.ID.Hex()+"/read", "bob", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"marked":3}}`, w.Body.String())

	// one frame although alice is in both rooms
	select {
	case f := <-alice.Send():
		assert.Equal(t, realtime.EventMessagesRead, f.Event)
	default:
		t.Fatal("counterpart was not notified")
	}
	select {
	case f := <-alice.Send():
		t.Fatalf("unexpected frame %s", f.Event)
	default:
	}

	w = ts.do(t, "PATCH", "/api/chat/conversation/"+c.ID.Hex()+"/read", "bob", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":{"marked":0}}`, w.Body.String())
}

func TestArchiveConversationAPI(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)

	c := newConversation("alice", "bob")
	ts.mongoStore.EXPECT().GetConversation(c.ID).Return(c, nil).Times(2)
	ts.mongoStore.EXPECT().ArchiveConversation(c.ID).Return(nil)

	w := ts.do(t, "PATCH", "/api/chat/conversation/"+c.ID.Hex()+"/archive", "mallory", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, "PATCH", "/api/chat/conversation/"+c.ID.Hex()+"/archive", "alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListConversationsAPI(t *testing.T) {
	ts := newTestServer(t)
	defer ts.ctl.Finish()

	ts.registered(nil)
	ts.mongoStore.EXPECT().ListConversations("alice").Return([]schema.Conversation{*newConversation("alice", "bob")}, nil)

	w := ts.do(t, "GET", "/api/chat/conversations", "alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result []schema.Conversation `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Result, 1)
}
