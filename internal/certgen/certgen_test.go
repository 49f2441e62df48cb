package certgen

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCert(t *testing.T, certPEM []byte) *x509.Certificate {
	t.Helper()
	block, _ := pem.Decode(certPEM)
	require.NotNil(t, block)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	return cert
}

func TestNewCA(t *testing.T) {
	ca, err := NewCA("Test CA")
	require.NoError(t, err)

	cert, key, err := ParseCA(ca)
	require.NoError(t, err)
	assert.True(t, cert.IsCA)
	assert.Equal(t, "Test CA", cert.Subject.CommonName)
	assert.NotZero(t, cert.KeyUsage&x509.KeyUsageCertSign)
	assert.True(t, key.PublicKey.Equal(cert.PublicKey))
}

func TestParseCA_Errors(t *testing.T) {
	ca, err := NewCA("Test CA")
	require.NoError(t, err)
	server, err := IssueServer(ca, []string{"localhost"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   Bundle
	}{
		{"garbage cert", Bundle{CertPEM: []byte("nope"), KeyPEM: ca.KeyPEM}},
		{"garbage key", Bundle{CertPEM: ca.CertPEM, KeyPEM: []byte("nope")}},
		{"leaf certificate", Bundle{CertPEM: server.CertPEM, KeyPEM: server.KeyPEM}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCA(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestIssueServer(t *testing.T) {
	ca, err := NewCA("Test CA")
	require.NoError(t, err)

	server, err := IssueServer(ca, []string{"localhost", "127.0.0.1", "api.internal"})
	require.NoError(t, err)

	cert := parseCert(t, server.CertPEM)
	assert.Equal(t, "localhost", cert.Subject.CommonName)
	assert.ElementsMatch(t, []string{"localhost", "api.internal"}, cert.DNSNames)
	require.Len(t, cert.IPAddresses, 1)
	assert.True(t, cert.IPAddresses[0].Equal(net.ParseIP("127.0.0.1")))
	assert.Equal(t, []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}, cert.ExtKeyUsage)

	roots := x509.NewCertPool()
	require.True(t, roots.AppendCertsFromPEM(ca.CertPEM))
	for _, host := range []string{"localhost", "127.0.0.1", "api.internal"} {
		_, err := cert.Verify(x509.VerifyOptions{DNSName: host, Roots: roots})
		assert.NoError(t, err, host)
	}
	_, err = cert.Verify(x509.VerifyOptions{DNSName: "example.com", Roots: roots})
	assert.Error(t, err)

	_, err = tls.X509KeyPair(server.CertPEM, server.KeyPEM)
	assert.NoError(t, err)
}

func TestIssueServer_NoHosts(t *testing.T) {
	ca, err := NewCA("Test CA")
	require.NoError(t, err)
	_, err = IssueServer(ca, nil)
	assert.Error(t, err)
}

func TestEnsure_ReusesCA(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tls")

	paths, err := Ensure(dir, DefaultHosts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, CAFile), paths.CA)
	firstCA, err := os.ReadFile(paths.CA)
	require.NoError(t, err)
	firstCert, err := os.ReadFile(paths.Cert)
	require.NoError(t, err)

	info, err := os.Stat(paths.Key)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	paths, err = Ensure(dir, DefaultHosts)
	require.NoError(t, err)
	secondCA, err := os.ReadFile(paths.CA)
	require.NoError(t, err)
	secondCert, err := os.ReadFile(paths.Cert)
	require.NoError(t, err)

	assert.Equal(t, firstCA, secondCA, "CA must survive a restart")
	assert.False(t, bytes.Equal(firstCert, secondCert), "server certificate is reissued")

	_, err = tls.LoadX509KeyPair(paths.Cert, paths.Key)
	assert.NoError(t, err)
}

func TestEnsure_CorruptCA(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CAFile), []byte("junk"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CAKeyFile), []byte("junk"), 0o600))

	_, err := Ensure(dir, DefaultHosts)
	assert.Error(t, err)
}
