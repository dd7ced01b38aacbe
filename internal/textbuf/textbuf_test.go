package textbuf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLines(t *testing.T) {
	b := New("é1\nline two\n")
	require.Equal(t, 3, b.LineCount())
	require.Equal(t, "é1", b.Line(0))
	require.Equal(t, "line two", b.Line(1))
	require.Equal(t, "", b.Line(2))
	require.Equal(t, "", b.Line(3))
	require.Equal(t, "", b.Line(-1))
	require.Equal(t, 12, b.CharCount())
}

func TestEditsUseCharacterOffsets(t *testing.T) {
	b := New("héllo")
	b.Insert(2, "XY")
	require.Equal(t, "héXYllo", b.Content())
	require.Equal(t, "XY", b.Substring(2, 4))

	b.Delete(1, 4)
	require.Equal(t, "hllo", b.Content())

	end := b.Replace(0, 1, "ßß")
	require.Equal(t, "ßßllo", b.Content())
	require.Equal(t, 2, end)
}

func TestEditsClamp(t *testing.T) {
	b := New("abc")
	b.Insert(99, "!")
	require.Equal(t, "abc!", b.Content())
	b.Delete(-5, 1)
	require.Equal(t, "bc!", b.Content())
	require.Equal(t, "", b.Substring(2, 1))
}

func TestProperties(t *testing.T) {
	b := New("")
	require.Equal(t, 1, b.LineCount())
	b.SetMajorModeName("go")
	b.SetShowGutter(true)
	require.Equal(t, "go", b.MajorModeName())
	require.True(t, b.ShowGutter())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb"), 0o644))
	b, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "a\nb", b.Content())
	require.Equal(t, []string{"a", "b"}, b.Lines())
}

func TestProperty_InsertThenDeleteRestores(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		orig := rapid.StringMatching(`[a-zé\n]{0,20}`).Draw(rt, "orig")
		ins := rapid.StringMatching(`[xü\n]{1,5}`).Draw(rt, "ins")
		b := New(orig)
		pos := rapid.IntRange(0, b.CharCount()).Draw(rt, "pos")

		b.Insert(pos, ins)
		require.Equal(rt, len([]rune(orig))+len([]rune(ins)), b.CharCount())
		b.Delete(pos, pos+len([]rune(ins)))
		require.Equal(rt, orig, b.Content())
	})
}

func TestSync(t *testing.T) {
	b := New("hello world")
	start, oldEnd, newEnd := b.Sync("hello big world")
	require.Equal(t, "hello big world", b.Content())
	require.Equal(t, []int{6, 6, 10}, []int{start, oldEnd, newEnd})

	start, oldEnd, newEnd = b.Sync("hello world")
	require.Equal(t, []int{6, 10, 6}, []int{start, oldEnd, newEnd})

	start, oldEnd, newEnd = b.Sync("hello world")
	require.Equal(t, start, oldEnd)
	require.Equal(t, start, newEnd)

	start, oldEnd, newEnd = b.Sync("aaa")
	require.Equal(t, []int{0, 11, 3}, []int{start, oldEnd, newEnd})
}
