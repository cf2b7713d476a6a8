package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "system",
			Description: "system layer file, may be repeated",
			Type:        cli.NamedFuncOpt(cfg.systemOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "configurator").
		WithSynopsis("configurator [opts] command [opts]").
		WithDescription("configurator reconciles layered configuration files with a schema.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return configuratorMain(cfg, cc, args)
		}).
		WithSubs(
			CompileCommand(cfg),
			ShowCommand(cfg),
			WriteCommand(cfg),
			SetCommand(cfg),
			MergeCommand(cfg),
			DiffCommand(cfg),
			GetCommand(cfg))
}

func CompileCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CompileConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Compile, "compile").
		WithAliases("c").
		WithSynopsis("compile [-d] [-depth n]").
		WithDescription("compile the schema and show its tree").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return compile(cfg, cc, args)
		})
}

func ShowCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShowConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Show, "show").
		WithAliases("s").
		WithSynopsis("show [-v | -layer system|user|full [-x]]").
		WithDescription("show the configuration reconciled with the schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return show(cfg, cc, args)
		})
}

func WriteCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WriteConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Write, "write").
		WithAliases("w").
		WithSynopsis("write [-n]").
		WithDescription("write back the modified configuration").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return write(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithSynopsis("set [-m] [-f] <patch> | set -at <path> <value>").
		WithDescription("edit the configuration with a JSON patch, a JSON merge patch or a value at a path, then write it back").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge files...").
		WithDescription("merge value files, later files taking precedence").
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] <from> <to>").
		WithDescription("show the structural difference between two value files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [-x] <expr> [files]").
		WithDescription("evaluate an expression over value files, or over the configuration").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}
