package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-signupform/pkg/formdef"
	"github.com/goliatone/go-signupform/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form definitions for schema errors and unknown validation patterns.\nWithout paths the embedded definitions are linted.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	engine, err := validation.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rule engine: %v\n", err)
		os.Exit(1)
	}

	sources, err := collect(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var violations []violation
	for _, src := range sources {
		violations = append(violations, lint(engine, src.name, src.raw)...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
	fmt.Printf("%d definition(s) ok\n", len(sources))
}

type source struct {
	name string
	raw  []byte
}

func collect(paths []string) ([]source, error) {
	if len(paths) == 0 {
		return embedded()
	}
	out := make([]source, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("lint %s: read file: %w", path, err)
		}
		out = append(out, source{name: path, raw: raw})
	}
	return out, nil
}

func embedded() ([]source, error) {
	fsys := formdef.EmbeddedFS()
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	out := make([]source, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", name, err)
		}
		out = append(out, source{name: name, raw: raw})
	}
	return out, nil
}

func lint(engine *validation.Engine, file string, raw []byte) []violation {
	result := engine.ValidateDefinition(raw, file)
	if result.Valid {
		return nil
	}
	out := make([]violation, 0, len(result.Issues))
	for _, issue := range result.Issues {
		location := "definition"
		if issue.Field != "" {
			location = "fields > " + issue.Field
		}
		out = append(out, violation{
			file:     file,
			location: location,
			message:  issue.Message,
		})
	}
	return out
}
