package tlsutil

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCert(t *testing.T, path string) *x509.Certificate {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	block, _ := pem.Decode(data)
	require.NotNil(t, block)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	return cert
}

func TestGenerateSelfSignedCert(t *testing.T) {
	dir := t.TempDir()

	files, err := GenerateSelfSignedCert([]string{"localhost", "127.0.0.1"}, dir)
	require.NoError(t, err)

	for _, p := range []string{files.CA, files.CAKey, files.ServerCrt, files.ServerKey} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), p)
	}

	ca := readCert(t, files.CA)
	server := readCert(t, files.ServerCrt)
	assert.True(t, ca.IsCA)
	assert.Equal(t, []string{"localhost"}, server.DNSNames)
	require.Len(t, server.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", server.IPAddresses[0].String())

	roots := x509.NewCertPool()
	roots.AddCert(ca)
	_, err = server.Verify(x509.VerifyOptions{DNSName: "localhost", Roots: roots})
	assert.NoError(t, err)

	_, err = ServerTLSConfig(files.ServerCrt, files.ServerKey)
	assert.NoError(t, err)

	creds, err := ClientTLSConfig(files.CA, "localhost")
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)
}

func TestGenerateSelfSignedCert_NoHosts(t *testing.T) {
	_, err := GenerateSelfSignedCert(nil, t.TempDir())
	assert.Error(t, err)
}

func TestServerTLSConfig_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := ServerTLSConfig(filepath.Join(dir, "nope.pem"), filepath.Join(dir, "nope-key.pem"))
	assert.Error(t, err)
}

func TestClientTLSConfig_BadCA(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(bad, []byte("not a certificate"), 0o600))

	_, err := ClientTLSConfig(bad, "")
	assert.Error(t, err)

	_, err = ClientTLSConfig(filepath.Join(dir, "missing.pem"), "")
	assert.Error(t, err)

	_, err = ClientTLSConfig("", "")
	assert.NoError(t, err, "empty CA falls back to the system pool")
}
