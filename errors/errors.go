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

package errors

import "strings"

// Error extends the standard error interface with a numeric code and a
// parent-error chain, mirroring the teacher's liberr.Error contract.
type Error interface {
	error

	// IsCode reports whether this error's own code equals the given code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent carries the given code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// HasParent reports whether this error wraps at least one parent error.
	HasParent() bool
	// GetParent returns the parent error chain, in the order they were added.
	GetParent() []error
	// Add appends parent errors onto the chain.
	Add(parent ...error)

	// Unwrap supports errors.Is / errors.As over the parent chain.
	Unwrap() []error
}

type codeError struct {
	code    CodeError
	message string
	parent  []error
}

func newError(code CodeError, message string, parent ...error) Error {
	e := &codeError{code: code, message: message}
	e.Add(parent...)
	return e
}

func (e *codeError) Error() string {
	var b strings.Builder
	b.WriteString(e.message)

	for _, p := range e.parent {
		if p == nil {
			continue
		}
		b.WriteString(": ")
		b.WriteString(p.Error())
	}

	return b.String()
}

func (e *codeError) IsCode(code CodeError) bool {
	return e.code == code
}

func (e *codeError) HasCode(code CodeError) bool {
	if e.code == code {
		return true
	}
	for _, p := range e.parent {
		if ce, ok := p.(Error); ok && ce.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *codeError) GetCode() CodeError {
	return e.code
}

func (e *codeError) HasParent() bool {
	return len(e.parent) > 0
}

func (e *codeError) GetParent() []error {
	return append([]error(nil), e.parent...)
}

func (e *codeError) Add(parent ...error) {
	for _, p := range parent {
		if p != nil {
			e.parent = append(e.parent, p)
		}
	}
}

func (e *codeError) Unwrap() []error {
	return e.parent
}
