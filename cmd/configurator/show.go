package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/encode"
	"github.com/signadot/configurator/eval"
	"github.com/signadot/configurator/value"
)

func show(cfg *ShowConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Show.Parse(cc, args)
	if err != nil {
		cfg.Show.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return cli.ErrUsage
	}
	return runShow(cfg, cc.Out)
}

func runShow(cfg *ShowConfig, w io.Writer) error {
	d, err := cfg.openDocument()
	if err != nil {
		return err
	}
	var v value.Value
	switch {
	case cfg.Layer != "":
		switch cfg.Layer {
		case "system":
			v = d.System()
		case "user":
			v = d.User()
		case "full":
			v = d.Full()
		default:
			return fmt.Errorf("%w: unknown layer %q", cli.ErrUsage, cfg.Layer)
		}
	case cfg.Values:
		v, _ = d.Value()
	default:
		opts := append(cfg.encOpts(w), encode.EncodeDefaults(true))
		return encode.Encode(d.Tree(), w, opts...)
	}
	if cfg.Expand && !v.IsEmpty() {
		vars, err := eval.LoadEnv()
		if err != nil {
			return err
		}
		e, err := eval.New(d.Full(), eval.Vars(vars))
		if err != nil {
			return err
		}
		if v, err = e.Expand(v); err != nil {
			return err
		}
	}
	return cfg.writeValue(w, v)
}
