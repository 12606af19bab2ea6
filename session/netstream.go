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

package session

import (
	"crypto/tls"
	"net"
	"sync"
	"syscall"
)

// netStream is the abstraction over the plain and TLS transports a Session
// can own. Both halves of a Session (reader and writer) read/write through
// the same netStream value.
type netStream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Flush() error
	CloseRead() error
	CloseWrite() error
	Close() error
	fd() int
}

// plainStream wraps a raw net.Conn. Go's *net.TCPConn already guarantees
// independent goroutines may call Read and Write concurrently without extra
// locking (the kernel socket itself serializes each direction), so — unlike
// the original Rust implementation, which duplicated the OS file descriptor
// to give the reader and writer their own handle — a Go Session shares a
// single net.Conn between its buffered reader and writer. See DESIGN.md.
type plainStream struct {
	conn net.Conn
}

func newPlainStream(conn net.Conn) *plainStream {
	return &plainStream{conn: conn}
}

func (p *plainStream) Read(b []byte) (int, error)  { return p.conn.Read(b) }
func (p *plainStream) Write(b []byte) (int, error) { return p.conn.Write(b) }
func (p *plainStream) Flush() error                { return nil }

func (p *plainStream) CloseRead() error {
	if tc, ok := p.conn.(interface{ CloseRead() error }); ok {
		return tc.CloseRead()
	}
	return nil
}

func (p *plainStream) CloseWrite() error {
	if tc, ok := p.conn.(interface{ CloseWrite() error }); ok {
		return tc.CloseWrite()
	}
	return nil
}

func (p *plainStream) Close() error {
	return p.conn.Close()
}

func (p *plainStream) fd() int {
	return connFD(p.conn)
}

// tlsDuplex wraps a single *tls.Conn behind a mutex. A TLS session is
// inherently single-streamed and stateful, so independent reader/writer
// halves must serialise their calls through the session; interleaved
// concurrent read and write on one TLS Session are therefore serialised,
// per spec.md §4.2.
type tlsDuplex struct {
	mu   sync.Mutex
	conn *tls.Conn
}

func newTLSDuplex(conn *tls.Conn) *tlsDuplex {
	return &tlsDuplex{conn: conn}
}

func (t *tlsDuplex) Read(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.Read(b)
}

func (t *tlsDuplex) Write(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.Write(b)
}

func (t *tlsDuplex) Flush() error { return nil }

func (t *tlsDuplex) CloseRead() error {
	// crypto/tls has no half-close; shutting down the underlying transport's
	// read half is best-effort only.
	t.mu.Lock()
	defer t.mu.Unlock()
	if nc := t.conn.NetConn(); nc != nil {
		if tc, ok := nc.(interface{ CloseRead() error }); ok {
			return tc.CloseRead()
		}
	}
	return nil
}

func (t *tlsDuplex) CloseWrite() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.CloseWrite()
}

func (t *tlsDuplex) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.conn.Close()
	return nil
}

func (t *tlsDuplex) fd() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if nc := t.conn.NetConn(); nc != nil {
		return connFD(nc)
	}
	return -1
}

// connFD returns the OS descriptor backing conn, or -1 if it cannot be
// determined (e.g. not a *net.TCPConn-like type, or already closed).
func connFD(conn net.Conn) int {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return -1
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return -1
	}

	fd := -1
	_ = raw.Control(func(descriptor uintptr) {
		fd = int(descriptor)
	})

	return fd
}
