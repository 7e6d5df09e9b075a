package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/vectorset/pkg/vectorset"
)

// command runs one vsetctl subcommand and returns the value to print.
type command func(ctx context.Context, svc vectorset.Service) (any, error)

var errUsage = errors.New("usage: vsetctl [-config file.yaml] <list|search|info|keys> [flags]")

// parseCommand parses the subcommand and its flags.
func parseCommand(args []string, stderr io.Writer) (command, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	name, rest := args[0], args[1:]
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	switch name {
	case "list":
		count := fs.Int("count", 0, "maximum number of element names (0 uses the configured default)")
		key, err := parseKeyed(fs, rest)
		if err != nil {
			return nil, err
		}
		req := vectorset.ListRequest{Key: key, Count: *count}
		return func(ctx context.Context, svc vectorset.Service) (any, error) {
			return svc.ListElements(ctx, req)
		}, nil

	case "search":
		element := fs.String("element", "", "search for neighbours of this element")
		vector := fs.String("vector", "", "comma separated query vector")
		count := fs.Int("count", 0, "maximum number of hits (0 uses the configured default)")
		ef := fs.Int("ef", 0, "exploration factor (0 leaves the server default)")
		filter := fs.String("filter", "", "filter expression, e.g. '.year > 2000'")
		scores := fs.Bool("scores", true, "include similarity scores")
		attrs := fs.Bool("attrs", false, "include element attributes")
		key, err := parseKeyed(fs, rest)
		if err != nil {
			return nil, err
		}

		query, err := parseQuery(*element, *vector)
		if err != nil {
			return nil, err
		}
		req := vectorset.SearchRequest{
			Key:            key,
			Query:          query,
			Count:          *count,
			Filter:         *filter,
			WithScores:     *scores,
			WithAttributes: *attrs,
		}
		if *ef > 0 {
			req.EF = ef
		}
		return func(ctx context.Context, svc vectorset.Service) (any, error) {
			return svc.Search(ctx, req)
		}, nil

	case "info":
		key, err := parseKeyed(fs, rest)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, svc vectorset.Service) (any, error) {
			return svc.Info(ctx, key)
		}, nil

	case "keys":
		match := fs.String("match", "", "glob pattern for key names")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		return func(ctx context.Context, svc vectorset.Service) (any, error) {
			return svc.ListKeys(ctx, *match)
		}, nil

	default:
		return nil, fmt.Errorf("unknown command %q: %w", name, errUsage)
	}
}

// parseKeyed parses flags followed by exactly one key argument. Flags may
// also follow the key.
func parseKeyed(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() == 0 {
		return "", fmt.Errorf("%s: missing key", fs.Name())
	}
	key := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return "", err
	}
	if fs.NArg() > 0 {
		return "", fmt.Errorf("%s: unexpected arguments %v", fs.Name(), fs.Args())
	}
	return key, nil
}

func parseQuery(element, vector string) (vectorset.Query, error) {
	switch {
	case element != "" && vector != "":
		return nil, errors.New("search: -element and -vector are mutually exclusive")
	case element != "":
		return vectorset.ByElement(element), nil
	case vector != "":
		parts := strings.Split(vector, ",")
		values := make(vectorset.Values, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("search: invalid vector component %q: %w", p, err)
			}
			values = append(values, v)
		}
		return values, nil
	default:
		return nil, errors.New("search: one of -element or -vector is required")
	}
}
