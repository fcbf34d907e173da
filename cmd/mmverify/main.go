package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lixiang90/formalmath/internal/mmcert"
	"github.com/lixiang90/formalmath/internal/mmconfig"
	"github.com/lixiang90/formalmath/internal/mmdb"
	"github.com/lixiang90/formalmath/internal/mmpipeline"
	"github.com/lixiang90/formalmath/internal/mmstore"
)

// recognizedDatabasePath reports whether path carries one of the
// recognized database file extensions, used only to warn. Decoding is
// attempted regardless, since the YAML content is authoritative.
func recognizedDatabasePath(path string) bool {
	for _, ext := range mmconfig.DatabaseFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// snapshotPath appends the canonical snapshot extension when the caller
// didn't supply one of their own.
func snapshotPath(path string) string {
	if strings.Contains(path, ".") {
		return path
	}
	return path + mmconfig.SnapshotFileExt
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: mmverify <check|trace|snapshot> <db.mm.yaml> [args...]")
	fmt.Fprintln(os.Stderr, "  mmverify check <db.mm.yaml>")
	fmt.Fprintln(os.Stderr, "  mmverify trace <db.mm.yaml> <label>")
	fmt.Fprintln(os.Stderr, "  mmverify snapshot <db.mm.yaml> <out.mmsnap> [--certify]")
}

func loadDatabase(path string) (*mmpipeline.Context, error) {
	if !recognizedDatabasePath(path) {
		fmt.Fprintf(os.Stderr, "Warning: %s does not use a recognized database extension (%v)\n", path, mmconfig.DatabaseFileExtensions)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading database: %w", err)
	}
	constants, axiomLabels, axioms, theoremLabels, theorems, err := mmdb.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding database: %w", err)
	}
	ctx := mmpipeline.NewContext()
	ctx.Constants = constants
	ctx.AxiomLabels, ctx.Axioms = axiomLabels, axioms
	ctx.TheoremLabels, ctx.Theorems = theoremLabels, theorems
	return ctx, nil
}

func build(ctx *mmpipeline.Context) *mmpipeline.Context {
	return mmpipeline.New(mmpipeline.BuildStage{}).Run(ctx)
}

func handleCheck(args []string) bool {
	if len(args) < 1 || args[0] != "check" {
		return false
	}
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}
	ctx, err := loadDatabase(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	result := build(ctx)

	for _, label := range result.TheoremLabels {
		if _, ok := result.Results[label]; ok {
			fmt.Printf("PASS %s\n", label)
		} else {
			fmt.Printf("FAIL %s\n", label)
		}
	}
	if len(result.Errors) > 0 {
		fmt.Fprintln(os.Stderr, "Verification failed with errors:")
		for _, err := range result.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", err)
		}
		os.Exit(1)
	}
	return true
}

func handleTrace(args []string) bool {
	if len(args) < 1 || args[0] != "trace" {
		return false
	}
	if len(args) < 3 {
		usage()
		os.Exit(1)
	}
	ctx, err := loadDatabase(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	ctx.WithTrace = true
	result := build(ctx)

	label := args[2]
	res, ok := result.Results[label]
	if !ok {
		fmt.Fprintf(os.Stderr, "Theorem %q did not verify\n", label)
		for _, err := range result.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", err)
		}
		os.Exit(1)
	}
	for _, line := range res.Trace {
		fmt.Println(line)
	}
	return true
}

func handleSnapshot(args []string) bool {
	if len(args) < 1 || args[0] != "snapshot" {
		return false
	}
	if len(args) < 3 {
		usage()
		os.Exit(1)
	}
	certify := len(args) > 3 && args[3] == "--certify"

	ctx, err := loadDatabase(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	result := build(ctx)
	if len(result.Errors) > 0 {
		fmt.Fprintln(os.Stderr, "Refusing to snapshot an invalid database:")
		for _, err := range result.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", err)
		}
		os.Exit(1)
	}

	outPath := snapshotPath(args[2])
	store, err := mmstore.Open(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %s\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Save(result.System); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving snapshot: %s\n", err)
		os.Exit(1)
	}

	if certify {
		for i, label := range result.System.TheoremLabels() {
			cert, err := mmcert.Build(result.System, label, i)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error certifying %s: %s\n", label, err)
				continue
			}
			fmt.Printf("%s %x\n", label, mmcert.Encode(cert))
		}
	}

	fmt.Printf("Snapshot written to %s (%d constants, %d axioms, %d theorems)\n",
		outPath, len(result.System.Constants()), len(result.System.AxiomLabels()), len(result.System.TheoremLabels()))
	return true
}

func main() {
	args := os.Args[1:]

	if handleCheck(args) {
		return
	}
	if handleTrace(args) {
		return
	}
	if handleSnapshot(args) {
		return
	}

	usage()
	os.Exit(1)
}
