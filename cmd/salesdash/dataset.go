package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

type datasetCmd struct {
	Validate datasetValidateCmd `cmd:"" help:"Validate a dataset file against the dataset schema."`
	Dump     datasetDumpCmd     `cmd:"" help:"Print the built-in sample dataset."`
}

type datasetValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"Dataset file (YAML or JSON)."`

	out io.Writer
}

func (cmd *datasetValidateCmd) Run(_ *Globals) error {
	ds, err := salesdash.ReadDataset(cmd.File)
	if err != nil {
		return err
	}
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "✓ %s: %d periods, %d products, %d team members, %d cards, %d insights\n",
		cmd.File, len(ds.Series), len(ds.Products), len(ds.Team), len(ds.Cards), len(ds.Insights))
	for _, member := range ds.Team {
		fmt.Fprintf(out, "  %-12s %3d%% of target\n", member.Name, member.TargetPercent())
	}
	return nil
}

type datasetDumpCmd struct {
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (yaml, json)."`

	out io.Writer
}

func (cmd *datasetDumpCmd) Run(_ *Globals) error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	ds := salesdash.SampleDataset()
	if cmd.Format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(ds)
	}
	return salesdash.EncodeDataset(out, ds)
}
