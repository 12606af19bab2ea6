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

package errors_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/rohitjoshi/connpool/errors"
)

const (
	testCode1 CodeError = iota + MinAvailable
	testCode2
)

var _ = Describe("CodeError", func() {
	BeforeEach(func() {
		if !ExistInMapMessage(MinAvailable) {
			RegisterIdFctMessage(MinAvailable, func(code CodeError) string {
				switch code {
				case testCode1:
					return "test error one"
				case testCode2:
					return "test error two"
				}
				return NullMessage
			})
		}
	})

	It("renders the registered message for a known code", func() {
		Expect(testCode1.Message()).To(Equal("test error one"))
	})

	It("falls back to the unknown message for an unregistered code", func() {
		Expect(UnknownError.Message()).To(Equal(UnknownMessage))
	})

	It("builds an Error carrying the code with no parent", func() {
		e := testCode1.Error(nil)
		Expect(e.GetCode()).To(Equal(testCode1))
		Expect(e.HasParent()).To(BeFalse())
		Expect(e.Error()).To(Equal("test error one"))
	})

	It("chains a parent cause via ErrorParent", func() {
		cause := fmt.Errorf("network unreachable")
		e := testCode2.ErrorParent(cause)

		Expect(e.HasParent()).To(BeTrue())
		Expect(e.GetParent()).To(ContainElement(cause))
		Expect(e.Error()).To(Equal("test error two: network unreachable"))
	})

	It("ignores nil parents passed to Add", func() {
		e := testCode1.Error(nil)
		e.Add(nil, fmt.Errorf("real cause"))
		Expect(e.GetParent()).To(HaveLen(1))
	})

	It("reports HasCode true across a wrapped parent chain", func() {
		inner := testCode1.Error(nil)
		outer := testCode2.ErrorParent(inner)

		Expect(outer.IsCode(testCode2)).To(BeTrue())
		Expect(outer.IsCode(testCode1)).To(BeFalse())
		Expect(outer.HasCode(testCode1)).To(BeTrue())
	})
})
