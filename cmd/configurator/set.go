package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/node"
)

var errIncomplete = errors.New("configuration is incomplete, nothing written")

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: set requires one argument, got %v", cli.ErrUsage, args)
	}
	return runSet(cfg, cc.In, args[0])
}

func runSet(cfg *SetConfig, in io.Reader, arg string) error {
	d, err := cfg.openDocument()
	if err != nil {
		return err
	}
	data := []byte(arg)
	if cfg.File {
		if arg == "-" {
			data, err = io.ReadAll(in)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			return err
		}
	}
	if cfg.At != "" {
		p, err := node.ParsePath(cfg.At)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		v, err := codec.Decode(data, codec.Format(format.YAMLFormat))
		if err != nil {
			return err
		}
		err = d.SetValue(p, v)
	} else {
		err = d.Patch(data, cfg.Merge)
	}
	if err != nil {
		return err
	}
	if !d.Tree().IsValid() {
		return errIncomplete
	}
	return nil
}
