package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/document"
	"github.com/signadot/configurator/libdiff"
)

func write(cfg *WriteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Write.Parse(cc, args)
	if err != nil {
		cfg.Write.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return cli.ErrUsage
	}
	return runWrite(cfg, cc.Out)
}

func runWrite(cfg *WriteConfig, w io.Writer) error {
	d, err := cfg.openDocument()
	if err != nil {
		return err
	}
	if !cfg.DryRun {
		return d.WriteBack()
	}
	v, ok := d.Value()
	if !ok {
		return fmt.Errorf("%s: %w", d.AppID, document.ErrNothingToWrite)
	}
	dd := libdiff.Make(d.User(), v)
	if dd == nil {
		return nil
	}
	return libdiff.Fprint(w, dd, cfg.diffColors(w))
}
