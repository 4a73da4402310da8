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
	"errors"

	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/internal/ioingest"
	"github.com/chemexpo/factodb/internal/ioreport"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

func getStubsCmd() *cobra.Command {
	var groupID int64

	stubsCmd := &cobra.Command{
		Use:   "stubs",
		Short: "Create stub products for documents without products",
		Long: `Stubs creates a placeholder product for every document of a data
group that has no product yet. A stub is titled by the product name of
the extracted text, or by the document title, and gets a unique UPC
with the 'stub_' prefix.

Examples:
  factodb stubs -g 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStubs(cmd, args, groupID)
		},
	}

	stubsCmd.Flags().Int64VarP(&groupID, "group", "g", 0, "data group id")
	return stubsCmd
}

func runStubs(_ *cobra.Command, _ []string, groupID int64) error {
	ctx := context.Background()
	if groupID < 1 {
		err := errors.New("data group id is required, use --group")
		gn.PrintErrorMessage(err)
		return err
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	sum, err := ioingest.New(op, cfg).Stubs(ctx, groupID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	for _, l := range ioreport.SummaryLines(sum) {
		gn.Info("%s", l)
	}
	return nil
}
