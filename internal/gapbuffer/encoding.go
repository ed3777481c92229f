package gapbuffer

import (
	"unicode/utf16"
	"unicode/utf8"
)

// encodeUnits converts external UTF-8 text to UTF-16 code units.
// Returns ErrEncoding for malformed input rather than substituting
// replacement characters.
func encodeUnits(s string) ([]uint16, error) {
	if !utf8.ValidString(s) {
		return nil, ErrEncoding
	}
	return utf16.Encode([]rune(s)), nil
}

// decodeUnits converts internal UTF-16 code units back to a UTF-8
// string. Unpaired surrogates cannot occur in well-formed content; if
// one slips through it decodes to U+FFFD rather than panicking.
func decodeUnits(units []uint16) string {
	return string(utf16.Decode(units))
}

// encodedByteLen returns the UTF-8 byte length the units would occupy,
// without materializing the string.
func encodedByteLen(units []uint16) int {
	n := 0
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < 0x80:
			n++
		case u < 0x800:
			n += 2
		case isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(units[i+1]):
			n += 4
			i++
		default:
			n += 3
		}
	}
	return n
}

func isHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u <= 0xDBFF
}

func isLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u <= 0xDFFF
}
