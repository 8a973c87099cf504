package chatclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackwu/shopchat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestSendChatMessage(t *testing.T) {
	var got map[string]any
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"conversation_id": "c1",
			"user_message": {"_id": "u1", "conversation_id": "c1", "sender": "user", "content": "Hello", "timestamp": "2024-01-15T10:30:00.123456"},
			"ai_message": {"_id": "a1", "conversation_id": "c1", "sender": "ai", "content": "Hi", "timestamp": "2024-01-15T10:30:01"}
		}`))
	})

	resp, err := c.SendChatMessage(context.Background(), SendRequest{UserID: "demo-user", Message: "Hello"})
	require.NoError(t, err)

	assert.Equal(t, "demo-user", got["user_id"])
	assert.Equal(t, "Hello", got["message"])
	_, hasConv := got["conversation_id"]
	assert.False(t, hasConv, "new conversations omit conversation_id")

	assert.Equal(t, "c1", resp.ConversationID)
	assert.Equal(t, "Hi", resp.AIMessage.Content)
	assert.Equal(t, model.SenderAssistant, resp.AIMessage.Sender)
	assert.Equal(t, model.SenderUser, resp.UserMessage.Sender)
	assert.True(t, time.Date(2024, 1, 15, 10, 30, 1, 0, time.UTC).Equal(resp.AIMessage.Timestamp))
}

func TestSendChatMessageContinuesConversation(t *testing.T) {
	var got SendRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"conversation_id": "c9", "ai_message": {"content": "ok"}}`))
	})

	resp, err := c.SendChatMessage(context.Background(), SendRequest{UserID: "u", Message: "more", ConversationID: "c9"})
	require.NoError(t, err)
	assert.Equal(t, "c9", got.ConversationID)
	assert.Equal(t, "ok", resp.AIMessage.Content)
}

func TestSendChatMessageStatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Conversation not found"}`, http.StatusNotFound)
	})

	_, err := c.SendChatMessage(context.Background(), SendRequest{UserID: "u", Message: "x", ConversationID: "gone"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "Conversation not found")
}

func TestSendChatMessageTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).SendChatMessage(context.Background(), SendRequest{UserID: "u", Message: "x"})
	assert.Error(t, err)
}

func TestFetchConversations(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/demo-user/conversations", r.URL.Path)
		w.Write([]byte(`[
			{"_id": "c2", "user_id": "demo-user", "title": "Product Info", "updated_at": "2024-01-20T08:00:00Z"},
			{"_id": "c1", "user_id": "demo-user", "title": "Order Inquiry", "updated_at": "2024-01-15T10:30:00.5"}
		]`))
	})

	convs := c.FetchConversations(context.Background(), "demo-user")
	require.Len(t, convs, 2)
	assert.Equal(t, "c2", convs[0].ID)
	assert.Equal(t, "Product Info", convs[0].Title)
	assert.Equal(t, 20, convs[0].UpdatedAt.Day())
	assert.Equal(t, "Order Inquiry", convs[1].Title)
}

func TestFetchConversationsFailureIsEmpty(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	convs := c.FetchConversations(context.Background(), "demo-user")
	assert.NotNil(t, convs)
	assert.Empty(t, convs)

	_, err := c.ListConversations(context.Background(), "demo-user")
	assert.Error(t, err)
}

func TestFetchMessages(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/c1/messages", r.URL.Path)
		w.Write([]byte(`[
			{"_id": "m1", "conversation_id": "c1", "sender": "user", "content": "What is the status of my order?", "timestamp": "2024-01-15T10:30:00"},
			{"_id": "m2", "conversation_id": "c1", "sender": "ai", "content": "Your order is being processed.", "timestamp": "2024-01-15T10:30:02"}
		]`))
	})

	msgs := c.FetchMessages(context.Background(), "c1")
	require.Len(t, msgs, 2)
	assert.Equal(t, model.SenderUser, msgs[0].Sender)
	assert.Equal(t, model.SenderAssistant, msgs[1].Sender)
	assert.Equal(t, "m2", msgs[1].ID)
}

func TestFetchMessagesBadJSONIsEmpty(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	assert.Empty(t, c.FetchMessages(context.Background(), "c1"))
}

func TestWireTime(t *testing.T) {
	testCases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: `"2024-01-15T10:30:00Z"`, want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{in: `"2024-01-15T10:30:00.250000"`, want: time.Date(2024, 1, 15, 10, 30, 0, 250000000, time.UTC)},
		{in: `"2024-01-15 10:30:00"`, want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{in: `null`},
		{in: `"yesterday"`, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			var wt wireTime
			err := json.Unmarshal([]byte(tc.in), &wt)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(time.Time(wt)), "got %v", time.Time(wt))
		})
	}
}
