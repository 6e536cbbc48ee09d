//go:build !integration

package dialer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTestCA(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "checkout test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(path, pemBytes, 0o600))
	return path
}

func TestTLS(t *testing.T) {
	t.Run("ValidCA", func(t *testing.T) {
		cfg, err := TLSConfig(writeTestCA(t))
		require.NoError(t, err)
		require.NotNil(t, cfg.RootCAs)

		d, err := TLS(writeTestCA(t))
		require.NoError(t, err)
		require.IsType(t, &tls.Dialer{}, d)
	})

	t.Run("EmptyPathIsPlaintext", func(t *testing.T) {
		cfg, err := TLSConfig("")
		require.NoError(t, err)
		require.Nil(t, cfg)

		d, err := TLS("")
		require.NoError(t, err)
		require.IsType(t, &net.Dialer{}, d)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := TLS(filepath.Join(t.TempDir(), "absent.pem"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("NotPEM", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a cert"), 0o600))
		_, err := TLSConfig(path)
		require.ErrorContains(t, err, "failed to parse CARootPEM")
	})
}
