package storage

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// EncodingPolicy decides what happens to byte sequences that are not
// valid text in the source encoding.
type EncodingPolicy string

const (
	// EncodingStrict fails the load on the first malformed sequence.
	EncodingStrict EncodingPolicy = "strict"
	// EncodingIgnore drops malformed sequences.
	EncodingIgnore EncodingPolicy = "ignore"
	// EncodingReplace substitutes U+FFFD for malformed sequences.
	EncodingReplace EncodingPolicy = "replace"
)

// ParseEncodingPolicy maps a configuration value to a policy.
func ParseEncodingPolicy(s string) (EncodingPolicy, error) {
	switch p := EncodingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case EncodingStrict, EncodingIgnore, EncodingReplace:
		return p, nil
	case "":
		return EncodingIgnore, nil
	}
	return "", fmt.Errorf("storage: unknown encoding policy %q", s)
}

// decodeReader wraps r so it yields UTF-8. A non empty charset is decoded
// first; the policy then handles what is still ill-formed. Strict leaves
// the bytes alone so the caller can detect them.
func decodeReader(r io.Reader, charset string, policy EncodingPolicy) (io.Reader, error) {
	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("storage: charset %q: %w", charset, err)
		}
		r = enc.NewDecoder().Reader(r)
	}

	switch policy {
	case EncodingIgnore:
		return transform.NewReader(r, dropIllFormed{}), nil
	case EncodingReplace:
		return transform.NewReader(r, runes.ReplaceIllFormed()), nil
	}
	return r, nil
}

// dropIllFormed removes byte sequences that are not valid UTF-8 and copies
// everything else, a validly encoded U+FFFD included.
type dropIllFormed struct{ transform.NopResetter }

func (dropIllFormed) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}
