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

package certificate_test

import (
	"crypto/tls"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/rohitjoshi/connpool/certificate"
)

var _ = Describe("Certificate Config", func() {
	var certPath, keyPath string

	BeforeEach(func() {
		certPath, keyPath = genCertPair(GinkgoT().TempDir())
	})

	It("builds a tls.Config with TLS 1.2 as the minimum version", func() {
		cfg := Config{}
		tc, err := cfg.New("localhost")

		Expect(err).To(BeNil())
		Expect(tc.MinVersion).To(Equal(uint16(tls.VersionTLS12)))
	})

	It("skips verification when VerifyPeer is false", func() {
		cfg := Config{VerifyPeer: false}
		tc, err := cfg.New("localhost")

		Expect(err).To(BeNil())
		Expect(tc.InsecureSkipVerify).To(BeTrue())
	})

	It("requires verification when VerifyPeer is true", func() {
		cfg := Config{VerifyPeer: true}
		tc, err := cfg.New("localhost")

		Expect(err).To(BeNil())
		Expect(tc.InsecureSkipVerify).To(BeFalse())
	})

	It("loads the client certificate pair when CertificateFile is set", func() {
		cfg := Config{CertificateFile: certPath, PrivateKeyFile: keyPath}
		tc, err := cfg.New("localhost")

		Expect(err).To(BeNil())
		Expect(tc.Certificates).To(HaveLen(1))
	})

	It("fails with ErrorCertificateLoad when the certificate file is missing", func() {
		cfg := Config{CertificateFile: "/nonexistent/cert.pem", PrivateKeyFile: "/nonexistent/key.pem"}
		_, err := cfg.New("localhost")

		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(ErrorCertificateLoad)).To(BeTrue())
	})

	It("fails with ErrorCAFileRead when the CA file is missing", func() {
		cfg := Config{CAFile: "/nonexistent/ca.pem"}
		_, err := cfg.New("localhost")

		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(ErrorCAFileRead)).To(BeTrue())
	})

	It("installs a verify-depth callback when VerifyDepth is set", func() {
		cfg := Config{VerifyDepth: 2}
		tc, err := cfg.New("localhost")

		Expect(err).To(BeNil())
		Expect(tc.VerifyPeerCertificate).ToNot(BeNil())
	})
})
