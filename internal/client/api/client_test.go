package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripperFunc lets a test stand in for the network.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, token string, fn roundTripperFunc) *Client {
	t.Helper()
	c, err := New("http://example.com/api/",
		WithHTTPClient(&http.Client{Transport: fn, Timeout: time.Second}),
		WithTokenSource(TokenFunc(func() string { return token })),
	)
	require.NoError(t, err)
	return c
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNew_RejectsBadScheme(t *testing.T) {
	_, err := New("ftp://example.com")
	require.Error(t, err)
}

func TestGet_AttachesHeadersAndQuery(t *testing.T) {
	c := newTestClient(t, "tok1", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/api/news", req.URL.Path)
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		assert.Equal(t, "tier_1", req.URL.Query().Get("tier"))
		assert.Equal(t, "Bearer tok1", req.Header.Get("Authorization"))
		_, err := uuid.Parse(req.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id must be a uuid")
		return respond(http.StatusOK, `{"value":"ok"}`), nil
	})

	var out struct {
		Value string `json:"value"`
	}
	err := c.Get(context.Background(), "/news", url.Values{"page": {"2"}, "tier": {"tier_1"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestGet_AnonymousHasNoAuthorization(t *testing.T) {
	c := newTestClient(t, "", func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("Authorization"))
		return respond(http.StatusOK, `{}`), nil
	})
	require.NoError(t, c.Get(context.Background(), "news", nil, nil))
}

func TestPost_EncodesJSON(t *testing.T) {
	c := newTestClient(t, "", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		b, _ := io.ReadAll(req.Body)
		assert.JSONEq(t, `{"email":"a@b.c","password":"p"}`, string(b))
		return respond(http.StatusCreated, `{"id":"1"}`), nil
	})
	var out map[string]string
	require.NoError(t, c.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c", "password": "p"}, &out))
	assert.Equal(t, "1", out["id"])
}

func TestDelete_NoContent(t *testing.T) {
	c := newTestClient(t, "tok", func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(strings.NewReader(""))}, nil
	})
	var out map[string]any
	require.NoError(t, c.Delete(context.Background(), "/news/1", &out))
	assert.Nil(t, out)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantAuth   bool
		wantStatus int
		wantMsg    string
	}{
		{"detail string", 404, `{"detail":"News not found"}`, false, 404, "News not found"},
		{"detail list", 422, `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, false, 422, "field required; too short"},
		{"error envelope", 500, `{"error":{"code":"internal","message":"internal error"}}`, false, 500, "internal error"},
		{"plain text", 500, "sync failed\n", false, 500, "sync failed"},
		{"empty body", 502, "", false, 502, "bad gateway"},
		{"unauthorized", 401, `{"detail":"Invalid email or password"}`, true, 401, "Invalid email or password"},
		{"forbidden", 403, `{"detail":"Admin access required"}`, true, 403, "Admin access required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "", func(req *http.Request) (*http.Response, error) {
				return respond(tt.status, tt.body), nil
			})
			err := c.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)

			if tt.wantAuth {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.True(t, errors.Is(err, ErrUnauthorized))
				assert.Equal(t, tt.wantStatus, authErr.Status)
				assert.Equal(t, tt.wantMsg, authErr.Message)
				return
			}
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.False(t, errors.Is(err, ErrUnauthorized))
			assert.Equal(t, tt.wantStatus, reqErr.Status)
			assert.Equal(t, tt.wantMsg, reqErr.Message)
			assert.Equal(t, tt.wantMsg, Message(err, "fallback"))
		})
	}
}

func TestNetworkError(t *testing.T) {
	c := newTestClient(t, "", func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("network down")
	})
	err := c.Get(context.Background(), "/news", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestInvalidJSON(t *testing.T) {
	c := newTestClient(t, "", func(req *http.Request) (*http.Response, error) {
		return respond(http.StatusOK, "not-json"), nil
	})
	var out map[string]any
	err := c.Get(context.Background(), "/news", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestUpload_Multipart(t *testing.T) {
	c := newTestClient(t, "tok", func(req *http.Request) (*http.Response, error) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		f, hdr, err := req.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "img.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(b))
		return respond(http.StatusOK, `{"url":"/uploads/images/img.png"}`), nil
	})
	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, c.Upload(context.Background(), "/auth/upload/image", "file", "img.png", strings.NewReader("PNGDATA"), &out))
	assert.Equal(t, "/uploads/images/img.png", out.URL)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&RequestError{Status: 404}))
	assert.False(t, IsNotFound(&RequestError{Status: 500}))
	assert.False(t, IsNotFound(errors.New("x")))
}
