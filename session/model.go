/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package session owns a single byte-stream conversation with one endpoint:
// the transport (plain or TLS), a buffered reader, a buffered writer, and
// the stable identity assigned at construction.
package session

import (
	"bufio"
	"crypto/tls"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	libuuid "github.com/hashicorp/go-uuid"

	liberr "github.com/rohitjoshi/connpool/errors"
	"github.com/rohitjoshi/connpool/certificate"
	"github.com/rohitjoshi/connpool/logging"
	"github.com/rohitjoshi/connpool/poolconfig"
)

// Session owns one transport plus buffered I/O over it.
type Session interface {
	// ID returns the stable identifier assigned at construction.
	ID() string

	// Valid reports whether the underlying descriptor is still open. This is
	// a cheap check, not a liveness probe: a true result does not guarantee
	// the peer has not closed its side.
	Valid() bool

	// Reader returns the buffered reader over the session's transport.
	Reader() *bufio.Reader
	// Writer returns the buffered writer over the session's transport.
	Writer() *bufio.Writer

	// Reconnect opens a fresh Session using the stored Config. The receiver
	// is left untouched; disposing it remains the caller's responsibility.
	Reconnect() (Session, liberr.Error)

	// Close shuts down the read and write halves (best effort) and releases
	// the underlying transport. Errors during shutdown are swallowed.
	Close()
}

type session struct {
	id     string
	stream netStream
	reader *bufio.Reader
	writer *bufio.Writer
	cfg    poolconfig.Config
	log    logging.Logger
	closed int32
}

// Connect opens a transport to cfg.Server:cfg.Port. If cfg.UseTLS is false a
// plain byte stream is established; otherwise TLS is negotiated per the
// policy in spec.md §4.2. The given Config is cloned into the returned
// Session and is not retained by reference.
func Connect(cfg poolconfig.Config, log logging.Logger) (Session, liberr.Error) {
	if log == nil {
		log = logging.Discard()
	}

	cfg = cfg.Normalize().Clone()
	id, e := newID()
	if e != nil {
		return nil, e
	}

	fields := logging.NewFields().Add("session_id", id).Add("server", cfg.Server).Add("port", cfg.Port)
	log.Event("session.connect", fields)

	addr := net.JoinHostPort(cfg.Server, strconv.Itoa(int(cfg.Port)))

	conn, err := net.DialTimeout("tcp", addr, cfg.ConnectTimeout)
	if err != nil {
		return nil, classifyDialError(err)
	}

	if rt := cfg.ReadTimeout; rt > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(rt))
	}
	if wt := cfg.WriteTimeout; wt > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(wt))
	}

	var stream netStream = newPlainStream(conn)

	if cfg.UseTLS {
		log.Event("session.tls_handshake", fields)

		tlsCfg, cErr := (certificate.Config{
			CertificateFile: cfg.CertificateFile,
			PrivateKeyFile:  cfg.PrivateKeyFile,
			CAFile:          cfg.CAFile,
			VerifyPeer:      cfg.VerifyPeer,
			VerifyDepth:     cfg.VerifyDepth,
		}).New(cfg.Server)
		if cErr != nil {
			_ = conn.Close()
			return nil, cErr
		}

		tlsConn := tls.Client(conn, tlsCfg)
		if hErr := tlsConn.Handshake(); hErr != nil {
			_ = conn.Close()
			return nil, ErrorTLSHandshake.ErrorParent(hErr)
		}

		stream = newTLSDuplex(tlsConn)
	}

	// Clear the connect-phase deadlines; reads and writes made through the
	// Session after Connect returns have no deadline.
	_ = conn.SetDeadline(time.Time{})

	s := &session{
		id:     id,
		stream: stream,
		reader: bufio.NewReader(stream),
		writer: bufio.NewWriter(stream),
		cfg:    cfg,
		log:    log,
	}

	return s, nil
}

func newID() (string, liberr.Error) {
	id, err := libuuid.GenerateUUID()
	if err != nil {
		return "", ErrorUUIDGenerate.ErrorParent(err)
	}
	return id, nil
}

func classifyDialError(err error) liberr.Error {
	if _, ok := err.(*net.DNSError); ok {
		return ErrorResolution.ErrorParent(err)
	}
	return ErrorTransport.ErrorParent(err)
}

func (s *session) ID() string {
	return s.id
}

func (s *session) Valid() bool {
	if atomic.LoadInt32(&s.closed) != 0 {
		return false
	}
	return s.stream.fd() >= 0
}

func (s *session) Reader() *bufio.Reader {
	return s.reader
}

func (s *session) Writer() *bufio.Writer {
	return s.writer
}

func (s *session) Reconnect() (Session, liberr.Error) {
	return Connect(s.cfg, s.log)
}

func (s *session) Close() {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return
	}

	s.log.Event("session.close", logging.NewFields().Add("session_id", s.id))

	_ = s.stream.CloseRead()
	_ = s.stream.CloseWrite()
	_ = s.stream.Close()
}
