package face

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{in: "#ff0000", want: RGB(255, 0, 0)},
		{in: "#0f0", want: RGB(0, 255, 0)},
		{in: "#123456", want: RGB(0x12, 0x34, 0x56)},
		{in: "red", want: Named("red")},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "#12", "#zzzzzz"} {
		_, err := ParseColor(bad)
		require.Error(t, err, bad)
	}
}

func TestColorString(t *testing.T) {
	require.Equal(t, "#0A0B0C", RGB(10, 11, 12).String())
	require.Equal(t, "blue", Named("blue").String())
}

func TestDefineOverwritesWholeFace(t *testing.T) {
	r := NewRegistry()
	r.Define(New("kw").WithForeground(RGB(1, 2, 3)).WithBold(true))
	r.Define(New("kw").WithItalic(true))

	got, ok := r.Get("kw")
	require.True(t, ok)
	require.Nil(t, got.Foreground, "redefinition must not merge the old foreground")
	require.False(t, got.Bold)
	require.True(t, got.Italic)
	require.Equal(t, 1, r.Len())
}

func TestDefineIsIdempotent(t *testing.T) {
	r := NewRegistry()
	f := New("string").WithForeground(RGB(9, 9, 9))
	r.Define(f)
	r.Define(f)
	require.Equal(t, []string{"string"}, r.Names())
	require.True(t, r.Exists("string"))
	require.False(t, r.Exists("missing"))
}

func TestDefineIgnoresUnnamed(t *testing.T) {
	r := NewRegistry()
	r.Define(Face{Bold: true})
	require.Equal(t, 0, r.Len())
}

func TestResetEmptiesRegistry(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	require.True(t, r.Exists(Keyword))
	r.Reset()
	require.Equal(t, 0, r.Len())
}

func TestDefaultRegistryHasRainbowPalette(t *testing.T) {
	for _, name := range RainbowPalette(RainbowSize) {
		require.True(t, FaceExists(name), name)
	}
}

func TestLoadThemeKnown(t *testing.T) {
	th, err := LoadTheme("dracula")
	require.NoError(t, err)
	require.NotEmpty(t, th.Text)
	require.NotEmpty(t, th.Faces)

	r := NewRegistry()
	_, err = ApplyTheme(r, "dracula")
	require.NoError(t, err)
	require.True(t, r.Exists(Keyword))
	require.True(t, r.Exists(Heading))
}

func TestLoadThemeUnknown(t *testing.T) {
	_, err := LoadTheme("this-theme-does-not-exist")
	require.Error(t, err)
}
