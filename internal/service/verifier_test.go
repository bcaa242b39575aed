package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestVerifier(handler http.HandlerFunc) (VerifierService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &verifierService{
		client:     srv.Client(),
		profileURL: srv.URL + "/",
	}, srv
}

func TestVerifierService_Verify(t *testing.T) {
	t.Run("existing profile", func(t *testing.T) {
		svc, srv := newTestVerifier(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			assert.Equal(t, "/some.user/", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		defer srv.Close()

		result := svc.Verify(context.Background(), "@some.user")
		assert.True(t, result.Exists)
		assert.Equal(t, "some.user", result.Username)
		assert.False(t, result.Fallback)
		assert.Empty(t, result.Reason)
	})

	t.Run("missing profile", func(t *testing.T) {
		svc, srv := newTestVerifier(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		result := svc.Verify(context.Background(), "no.such.user")
		assert.False(t, result.Exists)
		assert.Equal(t, "Profile not found", result.Reason)
	})

	t.Run("unreachable upstream fails open", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		client := srv.Client()
		srv.Close() // probe now hits a dead socket

		svc := &verifierService{client: client, profileURL: srv.URL + "/"}
		result := svc.Verify(context.Background(), "some.user")

		assert.True(t, result.Exists)
		assert.True(t, result.Fallback)
		assert.Equal(t, "some.user", result.Username)
	})

	t.Run("slow upstream fails open on timeout", func(t *testing.T) {
		var calls int32
		svc, srv := newTestVerifier(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(200 * time.Millisecond)
		})
		defer srv.Close()
		svc.(*verifierService).client.Timeout = 20 * time.Millisecond

		result := svc.Verify(context.Background(), "some.user")
		assert.True(t, result.Exists)
		assert.True(t, result.Fallback)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestVerifierService_Verify_MalformedHandles(t *testing.T) {
	var calls int32
	svc, srv := newTestVerifier(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	defer srv.Close()

	for _, handle := range []string{
		"",
		"@",
		"has space",
		"way-too#strange",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", // over 30 chars
	} {
		result := svc.Verify(context.Background(), handle)
		assert.False(t, result.Exists, "handle %q", handle)
		assert.Equal(t, "Invalid format", result.Reason, "handle %q", handle)
	}

	// Format rejection never touches the network.
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
