package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	oifits "github.com/jsy1001/go-oifits"
)

func checkFile(path string) error {
	d, err := oifits.ReadFITS(path)
	if err != nil {
		return err
	}
	for _, w := range d.ReadWarnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	report := oifits.Validate(d)
	fmt.Printf("%s: %s: %s\n", path, report.Severity, report.Description)
	for _, loc := range report.Locations {
		fmt.Println("  " + loc)
	}
	if report.Truncated {
		fmt.Println("  [list truncated]")
	}

	if report.Severity >= oifits.SeverityNotOIFITS {
		return cli.Exit(fmt.Sprintf("%s: failed validation", path), 1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:      "oifits-check",
		Usage:     "run the OIFITS conformance checks against a file",
		ArgsUsage: "FILE",
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() != 1 {
				return cli.Exit("usage: oifits-check FILE", 1)
			}
			return checkFile(cCtx.Args().Get(0))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
