/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
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

package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the event sink used across the pool and session packages. Every
// call carries an event name and a Fields payload; at minimum the timestamp
// and event name are recorded, matching the hooks listed in the external
// interfaces section of the specification.
type Logger interface {
	Event(event string, fields Fields)
	EventError(event string, fields Fields, err error)
	SetOutput(w io.Writer)
	SetLevel(lvl logrus.Level)
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger writing JSON-formatted entries, the default the
// teacher's logger package also falls back to outside of syslog/file hooks.
func New() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return &logger{l: l}
}

func (g *logger) SetOutput(w io.Writer) {
	g.l.SetOutput(w)
}

func (g *logger) SetLevel(lvl logrus.Level) {
	g.l.SetLevel(lvl)
}

func (g *logger) Event(event string, fields Fields) {
	g.l.WithFields(fields.Add("event", event).Logrus()).Info(event)
}

func (g *logger) EventError(event string, fields Fields, err error) {
	g.l.WithFields(fields.Add("event", event).Logrus()).WithError(err).Warn(event)
}

// Discard is a Logger that drops every event; useful for tests that do not
// want to assert on log output.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logger{l: l}
}
