package hexfont

import (
	"bufio"
	"bytes"
	"io"
	"math"
)

// maxTokenSize limits the length of a single token. Real-world HEX fonts have
// bitmaps of at most 64 digits, but we are generous.
const maxTokenSize = 64 * 1024

// newTokenScanner returns a scanner splitting HEX font input into tokens.
// Tokens are separated by white space, and ':' is always a token on its own.
// C and C++ style comments are skipped.
func newTokenScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxTokenSize)
	sc.Split(splitTokens)
	return sc
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// splitTokens is a bufio.SplitFunc for HEX font input.
func splitTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	i := 0
	for {
		for i < len(data) && isSpace(data[i]) {
			i++
		}
		if i+1 >= len(data) || data[i] != '/' {
			break
		}
		switch data[i+1] {
		case '/':
			nl := bytes.IndexByte(data[i:], '\n')
			if nl < 0 {
				if atEOF {
					return len(data), nil, nil
				}
				return i, nil, nil
			}
			i += nl + 1
			continue
		case '*':
			end := bytes.Index(data[i+2:], []byte("*/"))
			if end < 0 {
				if atEOF { // unterminated comment swallows the rest
					return len(data), nil, nil
				}
				return i, nil, nil
			}
			i += 2 + end + 2
			continue
		}
		break
	}
	if i >= len(data) {
		return i, nil, nil
	}
	if data[i] == '/' && i+1 == len(data) && !atEOF {
		return i, nil, nil // may be the start of a comment
	}
	if data[i] == ':' {
		return i + 1, data[i : i+1], nil
	}
	j := i
	for j < len(data) && !isSpace(data[j]) && data[j] != ':' {
		j++
	}
	if j == len(data) && !atEOF {
		return i, nil, nil
	}
	return j, data[i:j], nil
}

// parseHex converts s to an unsigned integer, reading hexadecimal digits
// until the first character which is not a hex digit. An optional sign and
// "0x" prefix are accepted. Values too large for 64 bits saturate. A string
// without any leading hex digit yields 0.
func parseHex(s string) uint64 {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	if i+2 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') && hexDigit(s[i+2]) >= 0 {
		i += 2
	}
	var n uint64
	overflow := false
	for ; i < len(s); i++ {
		d := hexDigit(s[i])
		if d < 0 {
			break
		}
		if n > (math.MaxUint64-uint64(d))/16 {
			overflow = true
		}
		n = n*16 + uint64(d)
	}
	if overflow {
		return math.MaxUint64
	}
	if neg {
		n = -n
	}
	return n
}

func hexDigit(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
