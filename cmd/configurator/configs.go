package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/signadot/configurator/encode"
	"github.com/signadot/configurator/format"
	"github.com/signadot/configurator/libdiff"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	SettingsFile string `cli:"name=config desc='settings file (yaml)'"`
	Schema       string `cli:"name=schema desc='schema document'"`
	App          string `cli:"name=app desc='application id, by default the schema file name'"`
	User         string `cli:"name=user desc='user layer file'"`
	WritePath    string `cli:"name=write desc='write back to this file instead of the user layer'"`
	Strict       bool   `cli:"name=strict desc='reject schemas whose enum variants overlap'"`
	Color        bool   `cli:"name=color desc='output with color'"`
	LogLevel     string `cli:"name=log-level desc='debug, info, warn or error'"`
	Gops         bool   `cli:"name=gops desc='start a gops agent'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	System []string

	Out      string
	CloseOut func() error

	Settings *Settings
	log      *slog.Logger

	Main *cli.Command
}

func (cfg *MainConfig) systemOpt(_ *cli.Context, a string) (any, error) {
	cfg.System = append(cfg.System, a)
	return a, nil
}

// flagValues returns the settings given on the command line.
func (cfg *MainConfig) flagValues() map[string]any {
	res := map[string]any{}
	for _, opt := range cfg.Main.Opts {
		if opt.Value == nil {
			continue
		}
		switch opt.Name {
		case "schema":
			res["schema"] = cfg.Schema
		case "app":
			res["app"] = cfg.App
		case "user":
			res["user"] = cfg.User
		case "write":
			res["write"] = cfg.WritePath
		case "strict":
			res["strict"] = cfg.Strict
		case "log-level":
			res["log_level"] = cfg.LogLevel
		}
	}
	switch {
	case cfg.J:
		res["format"] = format.JSONFormat.String()
	case cfg.Y:
		res["format"] = format.YAMLFormat.String()
	}
	if len(cfg.System) != 0 {
		res["system"] = cfg.System
	}
	return res
}

// outFormat is the format of values written to the output.
func (cfg *MainConfig) outFormat() format.Format {
	if cfg.Settings != nil && cfg.Settings.Format != "" {
		if f, err := format.ParseFormat(cfg.Settings.Format); err == nil {
			return f
		}
	}
	return format.YAMLFormat
}

// colors reports whether output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if cfg.colors(w) {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	return nil
}

func (cfg *MainConfig) diffColors(w io.Writer) *libdiff.Colors {
	if cfg.colors(w) {
		return libdiff.NewColors()
	}
	return libdiff.NoColors()
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.log
}

type CompileConfig struct {
	*MainConfig
	Defaults bool `cli:"name=d desc='show defaults'"`
	Depth    int  `cli:"name=depth desc='maximum depth to show'"`

	Compile *cli.Command
}

type ShowConfig struct {
	*MainConfig
	Values bool   `cli:"name=v desc='show the data to write back instead of the tree'"`
	Layer  string `cli:"name=layer desc='show a layer: system, user or full'"`
	Expand bool   `cli:"name=x desc='expand embedded expressions in shown values'"`

	Show *cli.Command
}

type WriteConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n desc='show the difference with the user layer, write nothing'"`

	Write *cli.Command
}

type SetConfig struct {
	*MainConfig
	Merge bool   `cli:"name=m desc='the patch is a JSON merge patch'"`
	File  bool   `cli:"name=f desc='the patch argument is a file'"`
	At    string `cli:"name=at desc='set the value at this path to the argument'"`

	Set *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type GetConfig struct {
	*MainConfig
	Expand bool `cli:"name=x desc='expand embedded expressions in the result'"`

	Get *cli.Command
}
