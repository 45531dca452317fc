package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fueldepot/depot"
	"github.com/fueldepot/depot/internal/store"
)

// stdout receives command results.
var stdout io.Writer = os.Stdout

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List documented versions",
	Args:  cobra.NoArgs,
	RunE:  runVersions,
}

var treeCmd = &cobra.Command{
	Use:   "tree <version>",
	Short: "Print the package trees of a version",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

var showCmd = &cobra.Command{
	Use:   "show <version> <hash>",
	Short: "Print the documentation of one file",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

// openBrowser loads the configuration and opens a Browser without caching.
func openBrowser() (*depot.Browser, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return depot.New(s, depot.WithCache(0, 0)), nil
}

// parseVersionArg parses a version id argument with a clear error.
func parseVersionArg(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid version %q: must be a positive integer", value)
	}
	return id, nil
}

// findVersion returns the version with the given id.
func findVersion(ctx context.Context, b *depot.Browser, id int64) (*store.Version, error) {
	versions, err := b.Versions(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("version %d not found", id)
}

func runVersions(cmd *cobra.Command, args []string) error {
	b, err := openBrowser()
	if err != nil {
		return outputError("versions", err)
	}
	defer b.Store().Close()

	ctx := cmd.Context()
	versions, err := b.Versions(ctx)
	if err != nil {
		return outputError("versions", err)
	}

	results := make([]CLIVersion, 0, len(versions))
	for _, v := range versions {
		n, err := b.Store().CountDocblocks(ctx, v.ID)
		if err != nil {
			return outputError("versions", err)
		}
		results = append(results, CLIVersion{
			ID:       v.ID,
			Label:    v.Label(),
			Default:  v.IsDefault,
			Files:    n,
			CodePath: v.CodePath,
			DocsPath: v.DocsPath,
		})
	}
	total := len(results)
	return outputResult(CLIResult{Command: "versions", Results: results, TotalCount: &total})
}

func runTree(cmd *cobra.Command, args []string) error {
	id, err := parseVersionArg(args[0])
	if err != nil {
		return outputError("tree", err)
	}
	b, err := openBrowser()
	if err != nil {
		return outputError("tree", err)
	}
	defer b.Store().Close()

	ctx := cmd.Context()
	v, err := findVersion(ctx, b, id)
	if err != nil {
		return outputError("tree", err)
	}
	records, err := b.Records(ctx, id)
	if err != nil {
		return outputError("tree", err)
	}
	idx, err := depot.Aggregate(records, depot.SelectionParams{Version: id})
	if err != nil {
		return outputError("tree", err)
	}

	return outputResult(CLIResult{Command: "tree", Results: CLITree{
		Version:   v.Label(),
		Constants: packagesToCLI(idx.Constants),
		Functions: packagesToCLI(idx.Functions),
		Classes:   packagesToCLI(idx.Classes),
	}})
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseVersionArg(args[0])
	if err != nil {
		return outputError("show", err)
	}
	b, err := openBrowser()
	if err != nil {
		return outputError("show", err)
	}
	defer b.Store().Close()

	ctx := cmd.Context()
	if _, err := findVersion(ctx, b, id); err != nil {
		return outputError("show", err)
	}
	records, err := b.Records(ctx, id)
	if err != nil {
		return outputError("show", err)
	}
	d, err := depot.ResolveDetail(records, depot.SelectionParams{Version: id, File: args[1]})
	if err != nil {
		return outputError("show", err)
	}
	if d == nil {
		return outputError("show", fmt.Errorf("no file with hash %q in version %d", args[1], id))
	}
	return outputResult(CLIResult{Command: "show", Results: detailToCLI(d)})
}

// packagesToCLI converts a package index.
func packagesToCLI(pi depot.PackageIndex) []CLIPackage {
	out := make([]CLIPackage, 0, len(pi))
	for _, g := range pi {
		p := CLIPackage{Name: g.Name, Entries: make([]CLIEntry, 0, len(g.Entries))}
		for _, e := range g.Entries {
			p.Entries = append(p.Entries, CLIEntry{Label: e.Label, Kind: string(e.Kind), Hash: e.Hash, Link: e.Link})
		}
		out = append(out, p)
	}
	return out
}

// detailToCLI converts a decoded file.
func detailToCLI(d *depot.Detail) CLIDetail {
	out := CLIDetail{
		File:      d.Record.File,
		Package:   d.Record.Package,
		Hash:      d.Record.Hash,
		Markers:   len(d.Markers),
		Constants: symbolNames(d.Constants),
		Functions: symbolNames(d.Functions),
		Classes:   symbolNames(d.Classes),
	}
	if d.Docblock != nil {
		out.Summary = d.Docblock.Short
	}
	return out
}

func symbolNames(syms []depot.Symbol) []string {
	out := make([]string, 0, len(syms))
	for _, s := range syms {
		if s.IsZero() {
			continue
		}
		out = append(out, s.Name)
	}
	return out
}

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(stdout, result)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}
