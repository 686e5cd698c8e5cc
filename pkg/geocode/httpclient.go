package geocode

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// NewHTTPClient returns a client with the given timeout. When caBundle names
// a PEM file, only the certificates in it are trusted.
func NewHTTPClient(timeout time.Duration, caBundle string) (*http.Client, error) {
	client := &http.Client{Timeout: timeout}
	if caBundle == "" {
		return client, nil
	}
	data, err := os.ReadFile(caBundle)
	if err != nil {
		return nil, fmt.Errorf("error reading CA bundle %s: %w", caBundle, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, errors.New("no certificates found in CA bundle " + caBundle)
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
	client.Transport = tr
	return client, nil
}
