package weather

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

const dialTimeout = 5 * time.Second

// newHTTPClient dials with a bounded connect and handshake time but leaves
// the total request time to the caller's context.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: dialTimeout,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:    4,
			IdleConnTimeout: 90 * time.Second,
		},
	}
}
