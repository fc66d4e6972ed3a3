// ratioctl analyzes financial statements without a running server: it reads
// a raw statements payload from a file (or fetches one), derives the ratio
// table, and writes CSV or XLSX output.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/finstmt/analyzer/internal/analysis"
	"github.com/finstmt/analyzer/internal/export"
	"github.com/finstmt/analyzer/internal/fetcher"
)

func main() {
	app := &cli.App{
		Name:  "ratioctl",
		Usage: "derive financial ratios from raw statement data",
		Commands: []*cli.Command{
			analyzeCommand(),
			exportCommand(),
			fetchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "read a statements JSON file and print the ratio table as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "statements JSON file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			report, err := analyzeFile(c.String("input"))
			if err != nil {
				return err
			}
			return export.WriteCSV(os.Stdout, report)
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "read a statements JSON file and write the ratio report to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "statements JSON file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "output file path",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: csv or xlsx",
				Value: "csv",
			},
		},
		Action: func(c *cli.Context) error {
			report, err := analyzeFile(c.String("input"))
			if err != nil {
				return err
			}

			out := c.String("out")
			switch c.String("format") {
			case "csv":
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				return export.WriteCSV(f, report)
			case "xlsx":
				return export.WriteXLSX(out, report)
			default:
				return fmt.Errorf("unknown format %q, expected csv or xlsx", c.String("format"))
			}
		},
	}
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "fetch raw statements for a ticker and print them as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "ticker",
				Aliases:  []string{"t"},
				Usage:    "ticker symbol (e.g. AAPL)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "frequency",
				Usage: "statement frequency: annual or quarterly",
				Value: fetcher.FrequencyAnnual,
			},
			&cli.StringFlag{
				Name:    "url",
				Usage:   "fundamentals API base URL",
				EnvVars: []string{"FUNDAMENTALS_URL"},
				Value:   "https://fundamentals.example.com/api",
			},
		},
		Action: func(c *cli.Context) error {
			client := fetcher.NewClient(c.String("url"), 3, 2*time.Second)
			stmts, err := client.FetchStatements(c.Context, c.String("ticker"), c.String("frequency"))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stmts)
		},
	}
}

func analyzeFile(path string) (*analysis.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var stmts fetcher.Statements
	if err := json.Unmarshal(data, &stmts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return analysis.NewService(nil, nil).AnalyzeStatements(&stmts)
}
