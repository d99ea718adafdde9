package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
jobs = 8
skip_external = true

[levels]
"dj3" = "advanced"
".dj0" = "Intermediate"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, "jsonl", cfg.Format, "未写出的键保留默认值")
	assert.True(t, cfg.SkipExternal)

	exts, err := cfg.Extensions()
	require.NoError(t, err)
	assert.Equal(t, model.Advanced, exts[".dj3"])
	assert.Equal(t, model.Intermediate, exts[".dj0"])
	assert.Equal(t, model.FullJava, exts[".java"])
	assert.Equal(t, []string{".dj0", ".dj1", ".dj2", ".dj3", ".java"}, cfg.SortedExtensions())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad toml":   `jobs = `,
		"bad format": `format = "xml"`,
		"bad jobs":   `jobs = -1`,
		"bad level":  "[levels]\n\".dj9\" = \"Expert\"",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Error(t, Save(path, nil))
}
