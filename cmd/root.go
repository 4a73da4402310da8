/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chemexpo/factodb/internal/iofs"
	"github.com/chemexpo/factodb/internal/iologger"
	app "github.com/chemexpo/factodb/pkg"
	"github.com/chemexpo/factodb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd builds the command tree. Every call returns an independent
// instance.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "factodb",
		Short:   "FactoDB ingests curated batches into the chemical exposure database",
		Long: `FactoDB is a bulk reconciliation and persistence engine of the
chemical exposure PostgreSQL database.

Features:
  - Schema Management: create and migrate the schema
  - Batch Ingestion: validate and store products, documents, extracted
    records, chemical curation and classification batches
  - Classification: assign product categories and keep the
    authoritative assignment of every product current

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (FACTODB_*)
  3. Config file (~/.config/factodb/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host -> FACTODB_DATABASE_HOST).

    FACTODB_DATABASE_HOST           PostgreSQL host
    FACTODB_DATABASE_PORT           PostgreSQL port
    FACTODB_DATABASE_USER           PostgreSQL user
    FACTODB_DATABASE_PASSWORD       PostgreSQL password
    FACTODB_DATABASE_DATABASE       Database name
    FACTODB_INGEST_MAX_ROWS         Largest accepted batch
    FACTODB_INGEST_IDENTITY_MODE    reserve or contiguous
    FACTODB_LOG_LEVEL               Log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for factodb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getIngestCmd(),
		getStubsCmd(),
		getClassifyCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// defaults until the config file is read
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Allowed variables are listed explicitly. They match the fields of
	// config.ToOptions().
	v.SetEnvPrefix("FACTODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("database.host", "FACTODB_DATABASE_HOST")
	v.BindEnv("database.port", "FACTODB_DATABASE_PORT")
	v.BindEnv("database.user", "FACTODB_DATABASE_USER")
	v.BindEnv("database.password", "FACTODB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "FACTODB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "FACTODB_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "FACTODB_DATABASE_BATCH_SIZE")

	v.BindEnv("ingest.max_rows", "FACTODB_INGEST_MAX_ROWS")
	v.BindEnv("ingest.identity_mode", "FACTODB_INGEST_IDENTITY_MODE")
	v.BindEnv("ingest.images_max_count", "FACTODB_INGEST_IMAGES_MAX_COUNT")
	v.BindEnv("ingest.image_max_bytes", "FACTODB_INGEST_IMAGE_MAX_BYTES")
	v.BindEnv("ingest.images_max_total_bytes",
		"FACTODB_INGEST_IMAGES_MAX_TOTAL_BYTES")

	v.BindEnv("log.level", "FACTODB_LOG_LEVEL")
	v.BindEnv("log.format", "FACTODB_LOG_FORMAT")
	v.BindEnv("log.destination", "FACTODB_LOG_DESTINATION")

	v.BindEnv("jobs_number", "FACTODB_JOBS_NUMBER")

	v.AutomaticEnv()
}
