package cmd

import (
	"testing"

	"github.com/huangsam/confcast/internal/contract"
	"github.com/huangsam/confcast/schema"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"parse", "weekly", "future", "run", "join", "schema", "mcp", "version"} {
		t.Run(name, func(t *testing.T) {
			found, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, found.Name())
		})
	}

	for _, flag := range []string{"schema", "dump", "strategy", "policy", "periods", "lenient", "output", "output-file", "log-format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	for _, flag := range []string{"records-file", "weekly-file", "future-file"} {
		assert.NotNil(t, runCmd.Flags().Lookup(flag), flag)
	}
	for _, flag := range []string{"join-series", "join-indir", "join-outdir", "join-pattern"} {
		assert.NotNil(t, joinCmd.Flags().Lookup(flag), flag)
	}
}

func resetConfig(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	initConfig()
	cfg = &contract.Config{}
	input = &contract.ConfigRawInput{}
}

func TestSharedSetup(t *testing.T) {
	t.Run("positional dump and defaults", func(t *testing.T) {
		resetConfig(t)
		viper.Set("schema", "conf.schema")

		require.NoError(t, sharedSetup(rootCtx, parseCmd, []string{"conf.sql"}, contract.NeedPipeline))
		assert.Equal(t, "conf.schema", cfg.SchemaPath)
		assert.Equal(t, "conf.sql", cfg.DumpPath)
		assert.Equal(t, schema.AutoStrategy, cfg.Strategy)
		assert.Equal(t, schema.CustomPolicy, cfg.Policy)
		assert.Equal(t, schema.DefaultPeriods, cfg.Periods)
		assert.Equal(t, contract.DefaultSkipHead, cfg.SkipHead)
		assert.Equal(t, contract.DefaultSkipTail, cfg.SkipTail)
		assert.True(t, cfg.UseColors)
	})

	t.Run("overrides", func(t *testing.T) {
		resetConfig(t)
		viper.Set("schema", "conf.schema")
		viper.Set("dump", "s3://bucket/conf.sql")
		viper.Set("policy", "ISO")
		viper.Set("periods", "3,1")

		require.NoError(t, sharedSetup(rootCtx, weeklyCmd, nil, contract.NeedPipeline))
		assert.Equal(t, "s3://bucket/conf.sql", cfg.DumpPath)
		assert.Equal(t, schema.ISOPolicy, cfg.Policy)
		assert.Equal(t, []int{3, 1}, cfg.Periods)
	})

	t.Run("missing schema", func(t *testing.T) {
		resetConfig(t)
		err := sharedSetup(rootCtx, parseCmd, []string{"conf.sql"}, contract.NeedPipeline)
		assert.ErrorContains(t, err, "--schema")
	})

	t.Run("invalid strategy", func(t *testing.T) {
		resetConfig(t)
		viper.Set("schema", "conf.schema")
		viper.Set("strategy", "guess")
		err := sharedSetup(rootCtx, parseCmd, []string{"conf.sql"}, contract.NeedPipeline)
		assert.ErrorContains(t, err, "invalid strategy")
	})
}
