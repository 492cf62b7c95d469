// Package fingerprint implements the hashing and feature-extraction
// primitives shared by signature matching and ledger deduplication.
//
// The rolling hash intentionally reproduces the 32-bit signed overflow
// behaviour of the deployed JavaScript clients. Signature identity
// across deployed clients depends on every implementation truncating
// identically, so the arithmetic here must not be "improved".
package fingerprint

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Hash computes the signed 32-bit rolling hash of s and renders it as a
// signed hexadecimal string. For each UTF-16 code unit c the state is
// updated as h = h*31 + c with wrap-around at 32 bits. Hash("") == "0".
func Hash(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return strconv.FormatInt(int64(h), 16)
}

// ContentFingerprint reduces free text to a stable, privacy-preserving
// digest: lower-cased, letters and spaces only, words longer than three
// characters, first twenty of them, joined by single spaces, then hashed.
// Empty input hashes the empty string.
func ContentFingerprint(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := make([]string, 0, 20)
	for _, w := range strings.Fields(b.String()) {
		if len(w) > 3 {
			words = append(words, w)
			if len(words) == 20 {
				break
			}
		}
	}

	return Hash(strings.Join(words, " "))
}

// ExtractDomain returns the lower-cased domain part of an address,
// taken after the last '@' and stopping before the first '>' that
// follows it. Malformed input yields the empty string, never an error.
func ExtractDomain(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 {
		return ""
	}
	domain := address[at+1:]
	if gt := strings.Index(domain, ">"); gt >= 0 {
		domain = domain[:gt]
	}
	return strings.ToLower(domain)
}
