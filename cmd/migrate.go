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
	"context"

	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/internal/ioschema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command. Migration follows the models
// of pkg/schema and never touches ingested rows.
func getMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the exposure database schema up to date",
		Long: `Migrate adapts an existing exposure database to the current factodb
models. It is non-destructive: documents, products, extracted records and
classifications stay as they are.

GORM AutoMigrate adds tables introduced by a newer factodb, for example
new extraction subtypes or statistical values, and adds missing columns
and indexes such as the unique (product, category, method) index of
classifications. Columns and tables are never dropped.

Seed rows are checked afterwards. Missing group types (CO, UN, FU, CP, LM,
HP, HH) and classification methods with their ranks are inserted.

Run 'factodb create' instead when the database is empty.

Examples:
  factodb migrate
  FACTODB_DATABASE_DATABASE=factotum_stage factodb migrate`,
		RunE: runMigrate,
	}
}

func runMigrate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !hasTables {
		gn.Warn("Database <em>%s</em> has no tables, run 'factodb create' first",
			cfg.Database.Database)
		return nil
	}

	gn.Info("Migrating <em>%s</em> on %s:%d...",
		cfg.Database.Database, cfg.Database.Host, cfg.Database.Port)
	if err = ioschema.NewManager(op).Migrate(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Schema and seed rows are up to date")
	return nil
}
