package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Trials)
	require.Empty(t, cfg.Queries)
}

func TestLoadConfig(t *testing.T) {
	src := `
trials  = 50000
workers = 4
seed    = 42

query "hero-eq" {
  pql = "select avg(equity(hero, river)) from hero='AA', villain='KK'"
}

query "flop-cat" {
  pql = "select max(flopHandCategory(hero)) from hero='7hAh', board='7s8hTc'"
}
`
	path := filepath.Join(t.TempDir(), "pokerquery.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 50000, cfg.Trials)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, int64(42), cfg.Seed)
	require.Len(t, cfg.Queries, 2)

	q, ok := cfg.Query("hero-eq")
	require.True(t, ok)
	require.Contains(t, q.PQL, "equity(hero, river)")

	_, ok = cfg.Query("missing")
	require.False(t, ok)
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("trials = }"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
