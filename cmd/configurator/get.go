package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/eval"
	"github.com/signadot/configurator/value"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 || args[0] == "" {
		return fmt.Errorf("%w: get requires an expression", cli.ErrUsage)
	}
	return runGet(cfg, cc.Out, cc.In, args[0], args[1:])
}

// runGet evaluates src over each file, or over the layered configuration
// when no file is given.
func runGet(cfg *GetConfig, w io.Writer, in io.Reader, src string, files []string) error {
	if len(files) == 0 {
		d, err := cfg.openDocument()
		if err != nil {
			return err
		}
		return cfg.query(w, d.Full(), src)
	}
	for i, file := range files {
		v, err := cfg.readValue(in, file)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		if err := cfg.query(w, v, src); err != nil {
			return fmt.Errorf("error querying %s with %q: %w", file, src, err)
		}
	}
	return nil
}

func (cfg *GetConfig) query(w io.Writer, doc value.Value, src string) error {
	vars, err := eval.LoadEnv()
	if err != nil {
		return err
	}
	e, err := eval.New(doc, eval.Vars(vars))
	if err != nil {
		return err
	}
	v, err := e.Eval(src)
	if err != nil {
		return err
	}
	if cfg.Expand {
		if v, err = e.Expand(v); err != nil {
			return err
		}
	}
	return cfg.writeValue(w, v)
}
