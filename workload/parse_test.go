package workload

import "bytes"
import "testing"

import "github.com/stretchr/testify/require"

func TestParse(t *testing.T) {
	text := []byte(`
# end-to-end scenario
malloc 0 16   # first
malloc 1 32
free 0

free 1
`)
	script, err := Parse(text)
	require.NoError(t, err)
	require.Equal(t, Script{
		{Kind: Alloc, Slot: 0, Size: 16},
		{Kind: Alloc, Slot: 1, Size: 32},
		{Kind: Free, Slot: 0},
		{Kind: Free, Slot: 1},
	}, script)
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "# nothing here\n  \n"} {
		script, err := Parse([]byte(text))
		require.NoError(t, err)
		require.Len(t, script, 0)
	}
}

func TestParseRoundtrip(t *testing.T) {
	script := Script{
		{Kind: Alloc, Slot: 3, Size: 7},
		{Kind: Free, Slot: 3},
	}
	var buf bytes.Buffer
	require.NoError(t, script.Write(&buf))
	other, err := Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, script, other)
}

func TestParseErrors(t *testing.T) {
	testcases := []struct {
		text string
		line string
	}{
		{"malloc 0\n", "line 1"},
		{"malloc 0 4\nfree\n", "line 2"},
		{"malloc 0 4\n\nrealloc 0 8\n", "line 3"},
		{"free 99999999999999999999\n", "line 1"},
		{"malloc 0\n16\n", "line 1"},
		{"malloc0 16\n", "line 1"},
		{"malloc 0 4 free 0\n", "line 1"},
		{"malloc 0 4\nfreed 0\n", "line 2"},
		{"# header\nmalloc 0 -4\n", "line 2"},
	}
	for _, tcase := range testcases {
		_, err := Parse([]byte(tcase.text))
		require.Error(t, err, tcase.text)
		require.Contains(t, err.Error(), tcase.line, tcase.text)
	}
}
