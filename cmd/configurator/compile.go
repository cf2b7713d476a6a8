package main

import (
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/encode"
	"github.com/signadot/configurator/node"
	"github.com/signadot/configurator/schema"
)

func compile(cfg *CompileConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compile.Parse(cc, args)
	if err != nil {
		cfg.Compile.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return cli.ErrUsage
	}
	return runCompile(cfg, cc.Out)
}

func runCompile(cfg *CompileConfig, w io.Writer) error {
	root, err := cfg.loadSchema()
	if err != nil {
		return err
	}
	if err := schema.CheckSatisfiable(root); err != nil {
		return err
	}
	tree, err := node.Compile(root, cfg.compileOpts()...)
	if err != nil {
		return err
	}
	for _, o := range node.CheckEnumOverlap(tree) {
		cfg.logger().Warn("ambiguous enum", "overlap", o.String())
	}
	opts := append(cfg.encOpts(w),
		encode.EncodeComments(true),
		encode.EncodeDefaults(cfg.Defaults),
		encode.Depth(cfg.Depth))
	return encode.Encode(tree, w, opts...)
}
