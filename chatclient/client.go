package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jackwu/shopchat/httpclient"
	"github.com/jackwu/shopchat/logger"
	"github.com/jackwu/shopchat/model"
)

const maxBodySize = 5 * 1024 * 1024

type Client struct {
	base *httpclient.BaseClient
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("chat api request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// New returns a client for the chat backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	httpClient := httpclient.New(httpclient.Config{Timeout: timeout})
	return &Client{base: httpclient.NewBaseClientWithClient(httpClient, baseURL)}
}

// SendChatMessage posts one user message. Failures are returned as-is;
// there is no retry.
func (c *Client) SendChatMessage(ctx context.Context, req SendRequest) (SendResponse, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return SendResponse{}, err
	}

	var out sendResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", bytes.NewReader(buf), &out); err != nil {
		return SendResponse{}, fmt.Errorf("send chat message: %w", err)
	}
	return SendResponse{
		ConversationID: out.ConversationID,
		UserMessage:    out.UserMessage.toModel(),
		AIMessage:      out.AIMessage.toModel(),
	}, nil
}

// FetchConversations lists the user's past conversations, most recent first
// as ordered by the backend. Errors are logged and yield an empty list.
func (c *Client) FetchConversations(ctx context.Context, userID string) []model.ConversationSummary {
	convs, err := c.ListConversations(ctx, userID)
	if err != nil {
		logger.ErrorWithFields("fetch conversations failed", logger.Fields{
			"user_id": userID,
			"error":   err.Error(),
		})
		return []model.ConversationSummary{}
	}
	return convs
}

// ListConversations is FetchConversations with the error surfaced.
func (c *Client) ListConversations(ctx context.Context, userID string) ([]model.ConversationSummary, error) {
	var raw []wireConversation
	relPath := "/users/" + url.PathEscape(userID) + "/conversations"
	if err := c.doJSON(ctx, http.MethodGet, relPath, nil, &raw); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	out := make([]model.ConversationSummary, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out, nil
}

// FetchMessages returns a conversation's messages in backend order.
// Errors are logged and yield an empty list.
func (c *Client) FetchMessages(ctx context.Context, conversationID string) []model.Message {
	var raw []wireMessage
	relPath := "/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.doJSON(ctx, http.MethodGet, relPath, nil, &raw); err != nil {
		logger.ErrorWithFields("fetch messages failed", logger.Fields{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
		return []model.Message{}
	}
	out := make([]model.Message, 0, len(raw))
	for _, w := range raw {
		out = append(out, w.toModel())
	}
	return out
}

func (c *Client) doJSON(ctx context.Context, method, relPath string, body io.Reader, out any) error {
	req, err := c.base.NewRequest(ctx, method, relPath, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
