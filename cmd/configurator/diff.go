package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	differs, err := runDiff(cfg, cc.Out, cc.In, args[0], args[1])
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func runDiff(cfg *DiffConfig, w io.Writer, in io.Reader, from, to string) (bool, error) {
	a, err := cfg.readValue(in, from)
	if err != nil {
		return false, err
	}
	b, err := cfg.readValue(in, to)
	if err != nil {
		return false, err
	}
	d := libdiff.Make(a, b)
	if d == nil {
		return false, nil
	}
	if cfg.Reverse {
		d = libdiff.Reverse(d)
	}
	if err := libdiff.Fprint(w, d, cfg.diffColors(w)); err != nil {
		return false, err
	}
	return true, nil
}
