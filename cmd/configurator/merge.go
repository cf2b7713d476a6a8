package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/value"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires at least one file", cli.ErrUsage)
	}
	return runMerge(cfg, cc.Out, cc.In, args)
}

func runMerge(cfg *MergeConfig, w io.Writer, in io.Reader, files []string) error {
	res := value.Empty
	for _, file := range files {
		v, err := cfg.readValue(in, file)
		if err != nil {
			return err
		}
		res = res.Merge(v)
	}
	return cfg.writeValue(w, res)
}
