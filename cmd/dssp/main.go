package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/TimothyStiles/dssp/pdb"
	"github.com/TimothyStiles/dssp/secondary"
)

// main is the entry point for the dssp command line utility. The app
// definition is separated out to help with testing.
func main() {
	if err := application().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// application defines the command line app. Argparsing is done
// entirely through "github.com/urfave/cli/v2", docs at
// https://github.com/urfave/cli/blob/master/docs/v2/manual.md
func application() *cli.App {
	return &cli.App{
		Name:  "dssp",
		Usage: "Assign protein secondary structure from PDB coordinate files.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "symbols",
				Usage: "Also print the per-residue conformation string.",
			},
			&cli.BoolFlag{
				Name:  "hash",
				Usage: "Also print the annotation fingerprint.",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log per-residue warnings while annotating.",
			},
		},
		Action: annotateCommand,
	}
}

func annotateCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no input files; usage: dssp [flags] file.pdb ...")
	}

	logger := zap.NewNop()
	if c.Bool("verbose") {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	for _, path := range c.Args().Slice() {
		model, err := pdb.Read(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		annotation := secondary.Annotate(model, secondary.WithLogger(logger))
		if err := printAnnotation(c, path, model.ResidueCount(), annotation); err != nil {
			return err
		}
	}
	return nil
}

func printAnnotation(c *cli.Context, path string, residueCount int, annotation *secondary.Annotation) error {
	out := c.App.Writer
	fmt.Fprintf(out, "%s: %d residues, %d fragments\n", path, residueCount, len(annotation.Fragments))

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	for _, fragment := range annotation.Fragments {
		fmt.Fprintf(w, "\tchain %s\t%d-%d\t%s\n",
			fragment.ChainID, fragment.Start, fragment.End, fragment.Type)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c.Bool("symbols") {
		fmt.Fprintf(out, "\tsymbols: %q\n", annotation.Symbols())
	}
	if c.Bool("hash") {
		fmt.Fprintf(out, "\thash: %s\n", annotation.Hash())
	}
	return nil
}
