// Command platetype-check validates a plate-format catalog and optionally
// prints the merged catalog or a single format.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"microplate/pkg/platetype"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

type options struct {
	catalogPath string
	print       bool
	describe    string
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("platetype-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.catalogPath, "catalog", "", "path to a plate catalog yaml (default: $"+platetype.EnvCatalogPath+" or the built-in formats)")
	fs.BoolVar(&opts.print, "print", false, "print the merged catalog as yaml")
	fs.StringVar(&opts.describe, "describe", "", "print the dimensions of one format")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := run(opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Plate catalog validation failed: %v\n", err)
		return 1
	}
	return 0
}

func run(opts options, stdout io.Writer) error {
	catalog, err := open(opts.catalogPath)
	if err != nil {
		return err
	}
	if opts.describe != "" {
		f, err := catalog.Lookup(opts.describe)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s: %dx%d (%d wells)\n", f.Name, f.Rows, f.Columns, f.Capacity())
		return err
	}
	if opts.print {
		out, err := catalog.Marshal()
		if err != nil {
			return fmt.Errorf("marshal catalog: %w", err)
		}
		_, err = stdout.Write(out)
		return err
	}
	_, err = fmt.Fprintf(stdout, "Plate catalog validation passed (%d formats: %s).\n",
		len(catalog.Names()), strings.Join(catalog.Names(), ", "))
	return err
}

func open(path string) (*platetype.Catalog, error) {
	if path == "" {
		return platetype.Open()
	}
	clean, err := validatePath(path)
	if err != nil {
		return nil, err
	}
	return platetype.LoadCatalogFile(clean)
}

// validatePath rejects empty and path-traversing references.
func validatePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", errors.New("empty path")
	}
	clean := filepath.Clean(p)
	for _, part := range strings.Split(filepath.ToSlash(clean), "/") {
		if part == ".." {
			return "", fmt.Errorf("path traversal not allowed: %s", p)
		}
	}
	return clean, nil
}
