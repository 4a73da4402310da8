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
	"strings"

	"github.com/chemexpo/factodb/internal/ioclassify"
	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/pkg/lifecycle"
	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

func getClassifyCmd() *cobra.Command {
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Manage product category assignments",
		Long: `Classify adds and removes product category (PUC) assignments.
After every change the authoritative assignment of affected products is
recomputed: the method with the lowest rank wins, ties go to the current
one, then to the newest assignment.

Examples:
  factodb classify assign -p 101,102,103 -u 7 -m MA
  factodb classify remove 55,56
  factodb classify category -g 12 -c "hair care" -u 7`,
	}

	classifyCmd.AddCommand(
		getAssignCmd(),
		getRemoveCmd(),
		getCategoryCmd(),
	)
	return classifyCmd
}

func getAssignCmd() *cobra.Command {
	var pucID int64
	var method string
	var products []string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign products to a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(append(products, args...))
			if err == nil && len(ids) == 0 {
				err = errors.New("product ids are required, use --products")
			}
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withClassifier(func(ctx context.Context, c lifecycle.Classifier) error {
				n, err := c.Assign(ctx, ids, pucID, strings.ToUpper(method))
				if err == nil {
					gn.Info("Added <em>%s</em> assignments",
						humanize.Comma(int64(n)))
				}
				return err
			})
		},
	}

	cmd.Flags().StringSliceVarP(&products, "products", "p", nil,
		"product ids separated by commas")
	cmd.Flags().Int64VarP(&pucID, "puc", "u", 0, "category (PUC) id")
	cmd.Flags().StringVarP(&method, "method", "m", schema.MethodManual,
		"classification method code")
	cmd.MarkFlagRequired("puc")
	return cmd
}

func getRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ASSIGNMENT_ID...",
		Short: "Remove category assignments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return withClassifier(func(ctx context.Context, c lifecycle.Classifier) error {
				n, err := c.Remove(ctx, ids)
				if err == nil {
					gn.Info("Removed <em>%s</em> assignments",
						humanize.Comma(int64(n)))
				}
				return err
			})
		},
	}
}

func getCategoryCmd() *cobra.Command {
	var groupID, pucID int64
	var category string

	cmd := &cobra.Command{
		Use:   "category",
		Short: "Assign products of a raw category to a category",
		Long: `Category classifies every product of data group documents that
share a raw category. The bulk assignment method is used, existing bulk
assignments of these products are moved to the new category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" {
				err := errors.New("raw category is required, use --category")
				gn.PrintErrorMessage(err)
				return err
			}
			return withClassifier(func(ctx context.Context, c lifecycle.Classifier) error {
				n, err := c.AssignByRawCategory(ctx, groupID, category, pucID)
				if err == nil {
					gn.Info("Classified <em>%s</em> products",
						humanize.Comma(int64(n)))
				}
				return err
			})
		},
	}

	cmd.Flags().Int64VarP(&groupID, "group", "g", 0, "data group id")
	cmd.Flags().StringVarP(&category, "category", "c", "", "raw category")
	cmd.Flags().Int64VarP(&pucID, "puc", "u", 0, "category (PUC) id")
	cmd.MarkFlagRequired("group")
	cmd.MarkFlagRequired("puc")
	return cmd
}

// withClassifier connects to the database and runs fn with a classifier.
func withClassifier(
	fn func(context.Context, lifecycle.Classifier) error,
) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err := fn(ctx, ioclassify.New(op)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
