package segments_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/slicer/internal/adapters/segments"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
		{
			name: "java store output with date header",
			input: "#Thu Oct 16 10:12:01 CEST 2026\n" +
				"s1=file\\:/a/b\n" +
				"s7=file\\:/x/y\n",
			want: map[string]string{"s1": "file:/a/b", "s7": "file:/x/y"},
		},
		{
			name:  "unescaped colons in value",
			input: "s1=file:/a/b\n",
			want:  map[string]string{"s1": "file:/a/b"},
		},
		{
			name:  "colon and whitespace separators",
			input: "s1:file:/a\ns2   file:/b\ns3 = file:/c\n",
			want:  map[string]string{"s1": "file:/a", "s2": "file:/b", "s3": "file:/c"},
		},
		{
			name:  "comments and blank lines",
			input: "# comment\n! other comment\n\n   \n  s1=file:/a\n",
			want:  map[string]string{"s1": "file:/a"},
		},
		{
			name:  "malformed lines are skipped",
			input: "justakey\n=orphan value\ns2=bad\\u00zz\ns1=file:/a\n",
			want:  map[string]string{"s1": "file:/a"},
		},
		{
			name:  "continuation lines",
			input: "s1=file:/very/\\\n    long/path\n",
			want:  map[string]string{"s1": "file:/very/long/path"},
		},
		{
			name:  "escaped backslash is not a continuation",
			input: "s1=C\\:\\\\\ns2=file:/b\n",
			want:  map[string]string{"s1": "C:\\", "s2": "file:/b"},
		},
		{
			name:  "unicode escapes and surrogate pairs",
			input: "s1=file:/caf\\u00E9\ns2=file:/\\uD83D\\uDE00\n",
			want:  map[string]string{"s1": "file:/café", "s2": "file:/😀"},
		},
		{
			name:  "crlf line endings",
			input: "s1=file:/a\r\ns2=file:/b\r\n",
			want:  map[string]string{"s1": "file:/a", "s2": "file:/b"},
		},
		{
			name:  "later duplicate wins",
			input: "s1=file:/old\ns1=file:/new\n",
			want:  map[string]string{"s1": "file:/new"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := segments.Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Latin1(t *testing.T) {
	got, err := segments.Decode(bytes.NewReader([]byte("s1=file:/caf\xe9\n")))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"s1": "file:/café"}, got)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	err := segments.Encode(&buf, map[string]string{
		"s10": "file:/ten",
		"s2":  "file:/a b#c!d=e",
		"sX":  " leading",
		"s1":  "file:/caf\u00e9/😀",
	})
	require.NoError(t, err)

	want := "s1=file\\:/caf\\u00E9/\\uD83D\\uDE00\n" +
		"s2=file\\:/a b\\#c\\!d\\=e\n" +
		"s10=file\\:/ten\n" +
		"sX=\\ leading\n"
	assert.Equal(t, want, buf.String())
}

func TestEncode_EscapesKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, segments.Encode(&buf, map[string]string{"a key:x": "v"}))
	assert.Equal(t, "a\\ key\\:x=v\n", buf.String())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	entries := map[string]string{
		"s1": "file:/home/user/src/",
		"s2": "jar:file:/libs/dep.jar!/",
		"s3": "file:/with space/and=equals/and#hash/",
		"s4": "file:/ünïcödé/日本/",
		"s5": "  padded  ",
		"s6": "tab\there\nnewline",
		"sX": "file:/malformed/id/",
	}

	var buf bytes.Buffer
	require.NoError(t, segments.Encode(&buf, entries))

	got, err := segments.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
