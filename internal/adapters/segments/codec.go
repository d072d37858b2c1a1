package segments

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.trai.ch/slicer/internal/core/domain"
)

// Decode parses a properties-style key=value stream.
//
// Comment lines (# or !), blank lines, lines without a separator and lines
// with an empty key or a broken \u escape are skipped. Input that is not
// valid UTF-8 is read as ISO-8859-1.
func Decode(r io.Reader) (map[string]string, error) {
	entries := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var logical strings.Builder
	continuing := false

	for scanner.Scan() {
		line := toUTF8(scanner.Text())
		line = strings.TrimRight(line, "\r")

		if continuing {
			line = strings.TrimLeft(line, " \t\f")
		} else {
			trimmed := strings.TrimLeft(line, " \t\f")
			if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
				continue
			}
			line = trimmed
		}

		if trailingBackslashes(line)%2 == 1 {
			logical.WriteString(line[:len(line)-1])
			continuing = true
			continue
		}

		logical.WriteString(line)
		continuing = false

		if key, value, ok := parseLine(logical.String()); ok {
			entries[key] = value
		}
		logical.Reset()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A continuation on the last line still forms an entry.
	if logical.Len() > 0 {
		if key, value, ok := parseLine(logical.String()); ok {
			entries[key] = value
		}
	}

	return entries, nil
}

// Encode writes entries as key=value lines ordered by slice ID, without a
// header comment.
func Encode(w io.Writer, entries map[string]string) error {
	keys := slices.SortedFunc(maps.Keys(entries), domain.CompareSliceIDs)

	bw := bufio.NewWriter(w)
	for _, key := range keys {
		if _, err := bw.WriteString(escape(key, true) + "=" + escape(entries[key], false) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func parseLine(line string) (string, string, bool) {
	sep := -1
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '=' || c == ':' || c == ' ' || c == '\t' || c == '\f' {
			sep = i
			break
		}
	}
	if sep <= 0 {
		return "", "", false
	}

	rawKey := line[:sep]
	rest := line[sep:]
	rest = strings.TrimLeft(rest, " \t\f")
	if rest != "" && (rest[0] == '=' || rest[0] == ':') {
		rest = strings.TrimLeft(rest[1:], " \t\f")
	}

	key, ok := unescape(rawKey)
	if !ok || key == "" {
		return "", "", false
	}
	value, ok := unescape(rest)
	if !ok {
		return "", "", false
	}
	return key, value, true
}

func unescape(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}

	var b strings.Builder
	var units []uint16
	flush := func() {
		if len(units) > 0 {
			b.WriteString(string(utf16.Decode(units)))
			units = units[:0]
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			flush()
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 't':
			flush()
			b.WriteByte('\t')
		case 'n':
			flush()
			b.WriteByte('\n')
		case 'r':
			flush()
			b.WriteByte('\r')
		case 'f':
			flush()
			b.WriteByte('\f')
		case 'u':
			if i+5 > len(s) {
				return "", false
			}
			n, err := strconv.ParseUint(s[i+1:i+5], 16, 16)
			if err != nil {
				return "", false
			}
			units = append(units, uint16(n))
			i += 4
		default:
			flush()
			b.WriteByte(s[i])
		}
	}
	flush()

	return b.String(), true
}

func escape(s string, isKey bool) string {
	var b strings.Builder
	for i, r := range s {
		switch r {
		case ' ':
			if isKey || i == 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(' ')
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '\\', '=', ':', '#', '!':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			if r < 0x20 || r > 0x7e {
				writeUnicodeEscape(&b, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	for _, unit := range utf16.Encode([]rune{r}) {
		b.WriteString(`\u`)
		hex := strconv.FormatUint(uint64(unit), 16)
		b.WriteString(strings.Repeat("0", 4-len(hex)))
		b.WriteString(strings.ToUpper(hex))
	}
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// toUTF8 reads a line that is not valid UTF-8 as ISO-8859-1.
func toUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return string(runes)
}
