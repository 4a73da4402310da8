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
	"log/slog"

	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/internal/iofs"
	"github.com/chemexpo/factodb/internal/ioingest"
	"github.com/chemexpo/factodb/internal/ioreport"
	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

func getIngestCmd() *cobra.Command {
	var flags ingestFlags

	ingestCmd := &cobra.Command{
		Use:   "ingest KIND FILE...",
		Short: "Validate and store tabular batches",
		Long: `Ingest validates tabular batches and stores them in one transaction
per batch. A batch with any validation error is rejected as a whole and
nothing is written.

Batch kinds:
  products     products of registered documents (-g, optional -i)
  documents    document registrations of a data group (-g)
  extraction   extracted records of documents (-g, -s)
  chemicals    chemical curation of raw chemical records
  cleancomp    cleaned compositions (-g, -s, -w)
  funcuses     functional use categories (-s)
  pucs         product classifications

Files are processed in order. Processing stops at the first rejected
batch, batches before it stay committed.

Examples:
  factodb ingest documents -g 12 documents.csv
  factodb ingest extraction -g 12 -s 3 extracted.csv
  factodb ingest products -g 12 -i ./images products.csv
  factodb ingest chemicals curated.csv -r report.yaml`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args, &flags)
		},
	}

	flags.register(ingestCmd)
	return ingestCmd
}

func runIngest(_ *cobra.Command, args []string, flags *ingestFlags) error {
	ctx := context.Background()

	kind, err := parseKind(args[0])
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	format, err := flags.format()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	images, err := iofs.Attachments(flags.images)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	ig := ioingest.New(op, cfg)
	files := args[1:]
	multi := len(files) > 1

	var bar *pb.ProgressBar
	if multi {
		bar = pb.Full.Start(len(files))
		bar.Set("prefix", "Batches ")
		bar.Set(pb.CleanOnFinish, true)
	}

	sums := make([]*batch.Summary, 0, len(files))
	for _, file := range files {
		in := batch.Input{
			Kind:     kind,
			Source:   file,
			GroupID:  flags.groupID,
			ScriptID: flags.scriptID,
			WFTypeID: flags.wfTypeID,
			Images:   images,
		}
		var sum *batch.Summary
		in.Data, err = iofs.ReadFile(file)
		if err == nil {
			sum, err = ig.Ingest(ctx, in)
		}
		if err != nil {
			if bar != nil {
				bar.Finish()
			}
			printSummaries(sums)
			return ingestFailed(file, flags.reportPath(file, multi), format, err)
		}

		sums = append(sums, sum)
		if path := flags.reportPath(file, multi); path != "" {
			if err = ioreport.Write(path, sum, format); err != nil {
				slog.Error("Cannot save summary", "file", path, "error", err)
			}
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	printSummaries(sums)
	return nil
}

func printSummaries(sums []*batch.Summary) {
	for _, s := range sums {
		for _, l := range ioreport.SummaryLines(s) {
			gn.Info("%s", l)
		}
		for _, w := range s.Warnings {
			gn.Warn("%s", w)
		}
	}
}

// ingestFailed prints the error of a rejected batch and saves its
// validation report when a report file is given.
func ingestFailed(
	file, path string,
	format ioreport.Format,
	err error,
) error {
	gn.PrintErrorMessage(err)

	rep, ok := ioingest.ValidationReport(err)
	if !ok {
		return err
	}
	for _, e := range rep.Errors {
		gn.Warn("%s", e.String())
	}
	if path == "" {
		return err
	}
	if werr := ioreport.Write(path, rep, format); werr != nil {
		gn.PrintErrorMessage(werr)
		return errors.Join(err, werr)
	}
	gn.Info("Validation report of <em>%s</em> saved to <em>%s</em>", file, path)
	return err
}
