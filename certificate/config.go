/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package certificate builds a *tls.Config from the pool's Endpoint Config,
// a trimmed analogue of the teacher's certificates package scoped to what a
// single outbound client connection needs: a client certificate pair, a
// trust anchor, and a peer-verification policy.
package certificate

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	liberr "github.com/rohitjoshi/connpool/errors"
)

const (
	ErrorCertificateLoad liberr.CodeError = iota + liberr.MinPkgCertificate
	ErrorKeyLoad
	ErrorCAFileRead
	ErrorCAFileParse
)

func init() {
	if liberr.ExistInMapMessage(liberr.MinPkgCertificate) {
		panic(fmt.Errorf("error code collision with package connpool/certificate"))
	}
	liberr.RegisterIdFctMessage(liberr.MinPkgCertificate, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorCertificateLoad:
		return "certificate: cannot load client certificate/key pair"
	case ErrorKeyLoad:
		return "certificate: cannot load private key"
	case ErrorCAFileRead:
		return "certificate: cannot read CA file"
	case ErrorCAFileParse:
		return "certificate: CA file does not contain a valid PEM certificate"
	}
	return liberr.NullMessage
}

// Config describes the TLS material and verification policy for one
// outbound connection, as set on poolconfig.Config.
type Config struct {
	// CertificateFile is the PEM path of the client certificate to present.
	CertificateFile string
	// PrivateKeyFile is the PEM path of the private key matching CertificateFile.
	PrivateKeyFile string
	// CAFile is the PEM path of the trust anchor; system trust is used if empty.
	CAFile string
	// VerifyPeer requires the server certificate to validate when true.
	VerifyPeer bool
	// VerifyDepth configures the certificate chain verification depth; 0 means unset.
	VerifyDepth int
}

// New builds a *tls.Config for the given server name, applying the highest
// TLS version the runtime offers and the policy documented in spec.md §4.2:
// peer verification gated by VerifyPeer, trust anchor from CAFile or system
// defaults, and an optional client certificate pair.
func (c Config) New(serverName string) (*tls.Config, liberr.Error) {
	cfg := &tls.Config{
		ServerName:         serverName,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !c.VerifyPeer,
	}

	if c.CAFile != "" {
		pool, err := c.loadCAPool()
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	}

	if c.CertificateFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertificateFile, c.PrivateKeyFile)
		if err != nil {
			return nil, ErrorCertificateLoad.ErrorParent(err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if c.VerifyDepth > 0 {
		cfg.VerifyPeerCertificate = verifyDepth(c.VerifyDepth)
	}

	return cfg, nil
}

func (c Config) loadCAPool() (*x509.CertPool, liberr.Error) {
	raw, e := os.ReadFile(c.CAFile)
	if e != nil {
		return nil, ErrorCAFileRead.ErrorParent(e)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(raw) {
		return nil, ErrorCAFileParse.Error(nil)
	}

	return pool, nil
}

// verifyDepth returns a VerifyPeerCertificate callback that rejects chains
// deeper than depth, since crypto/tls has no native verify-depth knob.
func verifyDepth(depth int) func([][]byte, [][]*x509.Certificate) error {
	return func(_ [][]byte, chains [][]*x509.Certificate) error {
		for _, chain := range chains {
			if len(chain) > depth {
				return fmt.Errorf("certificate: chain depth %d exceeds configured verify depth %d", len(chain), depth)
			}
		}
		return nil
	}
}
