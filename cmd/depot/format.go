package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// formatVersionsText formats CLIVersion results as aligned columns.
func formatVersionsText(w io.Writer, versions []CLIVersion) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVERSION\tDEFAULT\tFILES")
	for _, v := range versions {
		def := ""
		if v.Default {
			def = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", v.ID, v.Label, def, humanize.Comma(int64(v.Files)))
	}
	tw.Flush()
}

// formatTreeText prints each tree as an indented package list.
func formatTreeText(w io.Writer, tree CLITree) {
	fmt.Fprintf(w, "Version %s\n", tree.Version)
	sections := []struct {
		title string
		pkgs  []CLIPackage
	}{
		{"Constants", tree.Constants},
		{"Functions", tree.Functions},
		{"Classes", tree.Classes},
	}
	for _, sec := range sections {
		if len(sec.pkgs) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", sec.title)
		for _, p := range sec.pkgs {
			fmt.Fprintf(w, "  %s\n", p.Name)
			for _, e := range p.Entries {
				fmt.Fprintf(w, "    %s (%s)\n", e.Label, e.Hash)
			}
		}
	}
}

// formatDetailText formats CLIDetail as readable text.
func formatDetailText(w io.Writer, d CLIDetail) {
	fmt.Fprintf(w, "File: %s\n", d.File)
	fmt.Fprintf(w, "Package: %s\n", d.Package)
	if d.Summary != "" {
		fmt.Fprintf(w, "Summary: %s\n", d.Summary)
	}
	if d.Markers > 0 {
		fmt.Fprintf(w, "Markers: %d\n", d.Markers)
	}
	for _, list := range []struct {
		title string
		names []string
	}{
		{"Constants", d.Constants},
		{"Functions", d.Functions},
		{"Classes", d.Classes},
	} {
		if len(list.names) > 0 {
			fmt.Fprintf(w, "%s: %s\n", list.title, strings.Join(list.names, ", "))
		}
	}
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type.
func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []CLIVersion:
		formatVersionsText(w, v)
	case CLITree:
		formatTreeText(w, v)
	case CLIDetail:
		formatDetailText(w, v)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
