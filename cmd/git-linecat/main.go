package main

import (
	"context"
	"fmt"
	"io"
	"os"

	linecat "github.com/meetuparchive/git-linecat"
	"github.com/meetuparchive/git-linecat/exporter"
	"github.com/meetuparchive/git-linecat/gitsource"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var version = "unknown"
var builtBy = "unknown"
var date = "unknown"

func getExporter(exporterStr string, output io.Writer) (exporter.Exporter, error) {
	switch exporterStr {
	case "json":
		return exporter.NewJSONExporter(output), nil
	case "gzip-json":
		return exporter.NewGzipJSONExporter(output), nil
	case "jsonl":
		return exporter.NewJSONLExporter(output), nil
	case "gzip-jsonl":
		return exporter.NewGzipJSONLExporter(output), nil
	default:
		return nil, fmt.Errorf("invalid export format: %s", exporterStr)
	}
}

// getInput returns the line stream to classify and the repo label to stamp
// on every change. The label flag wins; otherwise it falls back to the git
// directory's name, or stays empty for piped input.
func getInput(c *cli.Context) (io.ReadCloser, string, error) {
	repo := c.String("repo")

	if gitDir := c.String("git-dir"); gitDir != "" {
		if repo == "" {
			repo = gitsource.Label(gitDir)
		}

		input, err := gitsource.Open(context.Background(), gitDir)

		return input, repo, err
	}

	if c.String("input") == "-" {
		return os.Stdin, repo, nil
	}

	input, err := os.Open(c.String("input"))

	return input, repo, err
}

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print version",
	}

	cli.VersionPrinter = func(c *cli.Context) {
		log.Printf("git-linecat version=%s date=%s builtBy=%s\n", version, date, builtBy)
	}

	app := &cli.App{
		Name:    "git-linecat",
		Version: version,
		Usage:   "Transform and categorize git log output into per-file change records",
		Description: "Expects input in the format produced by\n" +
			"git log --pretty=format:'\"%H\",\"%ae\",\"%ai\"' --numstat --no-merges",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Value:   false,
				Usage:   "verbose logging",
			},
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "repository label stamped on every record",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   "-",
				Usage:   "read git log output from `FILE`. stdin by default",
			},
			&cli.StringFlag{
				Name:  "git-dir",
				Usage: "run git log on the repository at `PATH` instead of reading input",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "-",
				Usage:   "set output path to `FILE`. stdout by default",
			},
			&cli.StringFlag{
				Name:  "export-format",
				Value: "jsonl",
				Usage: "export format: 'jsonl'/'gzip-jsonl'/'json'/'gzip-json'. 'jsonl' by default",
			},
		},
		Action: mainAction,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func mainAction(c *cli.Context) error {
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.ErrorLevel)
	}

	output := os.Stdout

	if c.String("output") != "-" {
		changedOutput, err := os.OpenFile(c.String("output"), os.O_RDWR|os.O_CREATE, os.ModePerm)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Could not open output file: %s", err), 1)
		}

		output = changedOutput

		defer output.Close()
	}

	outputExporter, err := getExporter(c.String("export-format"), output)
	if err != nil {
		cli.ShowAppHelpAndExit(c, 1)
	}

	input, repo, err := getInput(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not open input: %s", err), 1)
	}
	defer input.Close()

	machine := linecat.NewMachine(repo, outputExporter)

	stats, err := machine.Run(input)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Processing failed: %s", err), 1)
	}

	log.Infof("Final stats:\n%v lines: %v commits, %v changes emitted, %v binary files skipped\n",
		stats.Lines, stats.Commits, stats.Emitted, stats.Binary)

	if err := outputExporter.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("Could not save output: %s", err), 1)
	}

	log.Infoln("Done")

	return nil
}
