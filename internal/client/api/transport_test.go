package api

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dheerendra45/news-analyzer/internal/certgen"
)

func TestNewHTTPClient_NoCA(t *testing.T) {
	hc, err := NewHTTPClient(2*time.Second, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hc.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v; want 2s", hc.Timeout)
	}
}

func TestNewHTTPClient_MissingCA(t *testing.T) {
	_, err := NewHTTPClient(time.Second, filepath.Join(t.TempDir(), "missing.crt"))
	if err == nil || !strings.Contains(err.Error(), "failed to read CA cert") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestNewHTTPClient_BadPEM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.crt")
	if err := os.WriteFile(path, []byte("not a pem"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewHTTPClient(time.Second, path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse CA cert") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestNewHTTPClient_TrustsDevCA(t *testing.T) {
	paths, err := certgen.Ensure(t.TempDir(), certgen.DefaultHosts)
	require.NoError(t, err)
	pair, err := tls.LoadX509KeyPair(paths.Cert, paths.Key)
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	srv.TLS = &tls.Config{Certificates: []tls.Certificate{pair}}
	srv.StartTLS()
	defer srv.Close()

	plain, err := NewHTTPClient(time.Second, "")
	require.NoError(t, err)
	_, err = plain.Get(srv.URL)
	require.Error(t, err, "system roots must not trust the dev CA")

	hc, err := NewHTTPClient(time.Second, paths.CA)
	require.NoError(t, err)
	resp, err := hc.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
