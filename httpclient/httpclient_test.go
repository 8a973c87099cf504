package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestJoinsPath(t *testing.T) {
	c := NewBaseClient("http://localhost:8000/api")

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/chat", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/chat", req.URL.String())

	q := url.Values{"limit": []string{"10"}}
	req, err = c.NewRequest(context.Background(), http.MethodGet, "/users/u1/conversations", q, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/users/u1/conversations?limit=10", req.URL.String())
}

func TestNewRequestKeepsEscapedSegments(t *testing.T) {
	c := NewBaseClient("http://localhost:8000")

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/users/"+url.PathEscape("a/b c")+"/conversations", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/users/a%2Fb%20c/conversations", req.URL.String())
}

func TestNewRequestRejectsQueryInPath(t *testing.T) {
	c := NewBaseClient("http://localhost:8000")
	_, err := c.NewRequest(context.Background(), http.MethodGet, "/chat?x=1", nil, nil)
	assert.Error(t, err)
}

func TestRequestIDHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewBaseClientWithClient(New(Config{Timeout: time.Second}), srv.URL)
	req, err := c.NewRequest(context.Background(), http.MethodGet, "/ping", nil, nil)
	require.NoError(t, err)

	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, got)
}

func TestNewDefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewDefault().Timeout)
	assert.Equal(t, 2*time.Second, New(Config{Timeout: 2 * time.Second}).Timeout)
}
