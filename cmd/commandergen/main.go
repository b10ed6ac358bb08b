// Command commandergen writes the boilerplate Commander methods for context
// types, so that a type can run stratagem Commands against itself. It is
// meant to be invoked from a go:generate directive:
//
//	//go:generate go run github.com/kode4food/stratagem/cmd/commandergen -type=State
//
// For every named type it emits an Execute method that delegates to
// stratagem.Apply and, unless the type already has one, an Undo method that
// does nothing
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	var typeNames, outPath, dir string
	flag.StringVar(&typeNames, "type", "", "comma-separated list of type names")
	flag.StringVar(&outPath, "output", "", "output file name (default <type>_commander.go)")
	flag.StringVar(&dir, "dir", ".", "directory of the package to inspect")
	flag.Parse()

	if err := run(dir, outPath, splitNames(typeNames)); err != nil {
		fatal(err)
	}
}

func run(dir, outPath string, names []string) error {
	if len(names) == 0 {
		return ErrNoTypes
	}
	if outPath == "" {
		outPath = defaultOutput(names)
	}
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dir, outPath)
	}

	out, err := load(dir, outPath, names)
	if err != nil {
		return err
	}
	src, err := render(filepath.Base(outPath), out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

func splitNames(s string) []string {
	var res []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			res = append(res, name)
		}
	}
	return res
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "commandergen:", err)
	os.Exit(1)
}
