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

// Package errors provides a small numeric error-code taxonomy with parent
// chaining, used across the connpool packages in place of bare error strings.
package errors

import "sort"

// CodeError is a numeric error classification, one value per failure kind.
type CodeError uint16

const (
	UnknownError CodeError = 0

	UnknownMessage = "unknown error"
	NullMessage    = ""
)

// Package code offsets, mirroring the teacher's MinPkgXxx convention but
// trimmed to the packages this module owns.
const (
	MinPkgCertificate CodeError = 100
	MinPkgPoolConfig  CodeError = 200
	MinPkgSession     CodeError = 300
	MinPkgPool        CodeError = 400

	MinAvailable CodeError = 1000
)

// Message is a function that renders a human message for a registered code.
type Message func(code CodeError) string

var idMsgFct = make(map[CodeError]Message)

// RegisterIdFctMessage registers the message function for every code at or
// above minCode, until the next registered offset.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
}

// ExistInMapMessage reports whether minCode already has a registered message
// function; packages call this in init() to detect code-offset collisions.
func ExistInMapMessage(minCode CodeError) bool {
	_, ok := idMsgFct[minCode]
	return ok
}

func (c CodeError) offsets() []CodeError {
	keys := make([]CodeError, 0, len(idMsgFct))
	for k := range idMsgFct {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (c CodeError) findOffset() CodeError {
	var res CodeError
	for _, k := range c.offsets() {
		if k <= c && k > res {
			res = k
		}
	}
	return res
}

// Message returns the human message registered for this code, or the unknown
// error message if none was registered.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}
	if f, ok := idMsgFct[c.findOffset()]; ok {
		if m := f(c); m != NullMessage {
			return m
		}
	}
	return UnknownMessage
}

// Uint16 returns the code as a uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Error builds a new Error value carrying this code and optional parents.
func (c CodeError) Error(parent ...error) Error {
	return newError(c, c.Message(), parent...)
}

// ErrorParent builds a new Error carrying this code, wrapping the given cause
// plus any extra context errors as parents.
func (c CodeError) ErrorParent(cause error, extra ...error) Error {
	parents := make([]error, 0, 1+len(extra))
	if cause != nil {
		parents = append(parents, cause)
	}
	parents = append(parents, extra...)
	return newError(c, c.Message(), parents...)
}
