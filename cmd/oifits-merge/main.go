package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	oifits "github.com/jsy1001/go-oifits"
)

func mergeFiles(outfile string, infiles []string) error {
	inputs := make([]*oifits.Dataset, len(infiles))
	for i, path := range infiles {
		d, err := oifits.ReadFITS(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, w := range d.ReadWarnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		inputs[i] = d
	}

	merged, err := oifits.Merge(inputs)
	if err != nil {
		return fmt.Errorf("merging: %w", err)
	}

	if err := oifits.WriteFITS(outfile, merged); err != nil {
		return fmt.Errorf("writing %s: %w", outfile, err)
	}
	nvis, nvis2, nt3 := merged.CountData()
	fmt.Printf("%s: %d targets, %d vis, %d vis2, %d t3\n", outfile, len(merged.Target.Targets), nvis, nvis2, nt3)
	return nil
}

func main() {
	app := &cli.App{
		Name:      "oifits-merge",
		Usage:     "merge two or more OIFITS files into one",
		ArgsUsage: "OUTFILE INFILE1 INFILE2 ...",
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() < 3 {
				return cli.Exit("usage: oifits-merge OUTFILE INFILE1 INFILE2 ...", 1)
			}
			args := cCtx.Args().Slice()
			if err := mergeFiles(args[0], args[1:]); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
