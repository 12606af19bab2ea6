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

// Package poolconfig holds the immutable, cloneable Endpoint Config consumed
// by session.Connect and pool.New.
package poolconfig

import (
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"

	liberr "github.com/rohitjoshi/connpool/errors"
)

const (
	ErrorValidatorError liberr.CodeError = iota + liberr.MinPkgPoolConfig
)

func init() {
	if liberr.ExistInMapMessage(liberr.MinPkgPoolConfig) {
		panic(fmt.Errorf("error code collision with package connpool/poolconfig"))
	}
	liberr.RegisterIdFctMessage(liberr.MinPkgPoolConfig, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrorValidatorError:
		return "pool config: invalid config"
	}
	return liberr.NullMessage
}

const (
	DefaultServer         = "localhost"
	DefaultPort    uint16 = 21950
	DefaultTimeout        = 60 * time.Second
	DefaultConnect        = 30 * time.Second
)

// Config is the Endpoint Config: destination, TLS enablement and material,
// and per-operation timeouts. It is a plain value type, cloned into every
// Session at construction; callers must not mutate a Config through a shared
// reference for the lifetime of any Session built from it.
type Config struct {
	// Server is the host name or address to connect to.
	Server string `mapstructure:"server" json:"server" yaml:"server" toml:"server" validate:"required,hostname_rfc1123|ip"`

	// Port is the TCP port to connect to.
	Port uint16 `mapstructure:"port" json:"port" yaml:"port" toml:"port"`

	// UseTLS enables TLS negotiation after the TCP connect.
	UseTLS bool `mapstructure:"use_tls" json:"use_tls" yaml:"use_tls" toml:"use_tls"`

	// ConnectTimeout bounds the TCP connect phase only; the TLS handshake is
	// governed by ReadTimeout/WriteTimeout (see DESIGN.md Open Question).
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" json:"connect_timeout" yaml:"connect_timeout" toml:"connect_timeout"`
	// ReadTimeout is the read deadline set on the socket while Connect runs,
	// so it bounds the TLS handshake. Connect clears the deadline before it
	// returns; reads made through the Session afterwards have no timeout.
	ReadTimeout time.Duration `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout" toml:"read_timeout"`
	// WriteTimeout is the write deadline set on the socket while Connect runs,
	// so it bounds the TLS handshake. Connect clears the deadline before it
	// returns; writes made through the Session afterwards have no timeout.
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout" toml:"write_timeout"`

	// CertificateFile is the PEM path of the client certificate to present.
	CertificateFile string `mapstructure:"certificate_file" json:"certificate_file" yaml:"certificate_file" toml:"certificate_file"`
	// PrivateKeyFile is the PEM path of the client private key.
	PrivateKeyFile string `mapstructure:"private_key_file" json:"private_key_file" yaml:"private_key_file" toml:"private_key_file"`
	// CAFile is the PEM path of the trust anchor; system trust is used if empty.
	CAFile string `mapstructure:"ca_file" json:"ca_file" yaml:"ca_file" toml:"ca_file"`

	// VerifyPeer requires peer certificate validation when UseTLS is true.
	VerifyPeer bool `mapstructure:"verify_peer" json:"verify_peer" yaml:"verify_peer" toml:"verify_peer"`
	// VerifyDepth configures the verification chain depth; 0 means "not set".
	VerifyDepth int `mapstructure:"verify_depth" json:"verify_depth" yaml:"verify_depth" toml:"verify_depth" validate:"gte=0"`
}

// Default returns a Config populated with the documented defaults.
func Default() Config {
	return Config{
		Server:         DefaultServer,
		Port:           DefaultPort,
		UseTLS:         false,
		ConnectTimeout: DefaultConnect,
		ReadTimeout:    DefaultTimeout,
		WriteTimeout:   DefaultTimeout,
	}
}

// Clone returns an independent copy of c; Config has no reference fields, so
// a plain value copy already satisfies "two Sessions never share a mutable
// Config".
func (c Config) Clone() Config {
	return c
}

// Normalize fills in the documented defaults for any zero-valued field that
// has one (Server, Port, the three durations). It leaves every explicitly
// set field untouched and never touches TLS material or verification flags.
func (c Config) Normalize() Config {
	if c.Server == "" {
		c.Server = DefaultServer
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnect
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultTimeout
	}
	return c
}

// Validate runs struct-tag validation over the config, matching the
// teacher's ftpclient.Config.Validate/certificates.Config.Validate pattern.
// It is advisory: an invalid Config still only surfaces as a connect-time
// error, per spec.md §4.1.
func (c Config) Validate() liberr.Error {
	if err := libval.New().Struct(c); err != nil {
		e := ErrorValidatorError.Error(nil)
		if ve, ok := err.(libval.ValidationErrors); ok {
			for _, fe := range ve {
				//nolint #goerr113
				e.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", fe.Namespace(), fe.ActualTag()))
			}
		} else {
			e.Add(err)
		}
		return e
	}
	return nil
}
