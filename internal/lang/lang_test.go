package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want ID
	}{
		{"main.go", Go},
		{"/x/README.MD", Markdown},
		{"lib/a.rb", Ruby},
		{"Gemfile", Ruby},
		{"go.mod", Plain},
		{"Cargo.toml", TOML},
		{"solve.jl", Julia},
		{"noext", Plain},
		{"a.unknown", Plain},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			require.Equal(t, tc.want, Detect(tc.path))
		})
	}
}

func TestCatalog(t *testing.T) {
	require.Equal(t, []string{".md", ".mdown"}, Extensions(Markdown))
	require.Equal(t, []string{"Gemfile", "Rakefile"}, Files(Ruby))
	require.Equal(t, []string{"bash", "dash", "sh", "zsh"}, Interpreters(Bash))
	require.Contains(t, All(), Plain)
	require.Contains(t, All(), Julia)

	ids := All()
	for i := 1; i < len(ids); i++ {
		require.Less(t, string(ids[i-1]), string(ids[i]))
	}
}
