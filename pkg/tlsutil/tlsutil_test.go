package tlsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDevCertificates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")

	certs, err := GenerateDevCertificates([]string{"localhost", "127.0.0.1"}, dir)
	require.NoError(t, err)

	for _, f := range []string{certs.CAFile, certs.CertFile, certs.KeyFile} {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), f)
	}

	t.Run("server credentials", func(t *testing.T) {
		creds, err := ServerCredentials(ServerOptions{CertFile: certs.CertFile, KeyFile: certs.KeyFile})
		require.NoError(t, err)
		assert.Equal(t, "tls", creds.Info().SecurityProtocol)
	})

	t.Run("mutual tls", func(t *testing.T) {
		creds, err := ServerCredentials(ServerOptions{
			CertFile:     certs.CertFile,
			KeyFile:      certs.KeyFile,
			ClientCAFile: certs.CAFile,
		})
		require.NoError(t, err)
		assert.NotNil(t, creds)
	})

	t.Run("client credentials", func(t *testing.T) {
		creds, err := ClientCredentials(certs.CAFile, "localhost")
		require.NoError(t, err)
		assert.Equal(t, "localhost", creds.Info().ServerName)
	})
}

func TestCredentialErrors(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.pem")
	require.NoError(t, os.WriteFile(bogus, []byte("not a certificate"), 0o600))

	_, err := ServerCredentials(ServerOptions{CertFile: filepath.Join(dir, "missing.pem"), KeyFile: bogus})
	assert.Error(t, err)

	_, err = ClientCredentials(bogus, "")
	assert.ErrorContains(t, err, "failed to parse CA certificate")

	_, err = ClientCredentials(filepath.Join(dir, "missing.pem"), "")
	assert.ErrorContains(t, err, "read CA file")
}
