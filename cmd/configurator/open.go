package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/configurator/document"
	"github.com/signadot/configurator/node"
	"github.com/signadot/configurator/schema"
)

func (cfg *MainConfig) loadSchema() (*schema.Root, error) {
	if cfg.Settings == nil || cfg.Settings.Schema == "" {
		return nil, fmt.Errorf("%w: no schema, use -schema or set schema in the settings", cli.ErrUsage)
	}
	return schema.LoadFile(cfg.Settings.Schema)
}

func (cfg *MainConfig) compileOpts() []node.CompileOption {
	if cfg.Settings.Strict {
		return []node.CompileOption{node.Strict()}
	}
	return nil
}

// openDocument opens the document of the schema with the layers given in
// the settings, falling back to those named by the schema.
func (cfg *MainConfig) openDocument() (*document.Document, error) {
	root, err := cfg.loadSchema()
	if err != nil {
		return nil, err
	}
	s := cfg.Settings
	opts := []document.Option{
		document.WithLogger(cfg.logger()),
		document.WithCompileOptions(cfg.compileOpts()...),
	}
	if len(s.System) != 0 {
		srcs := make([]document.Source, len(s.System))
		for i, p := range s.System {
			f, err := document.NewFile(p, s.Format)
			if err != nil {
				return nil, err
			}
			srcs[i] = f
		}
		opts = append(opts, document.WithSystem(srcs...))
	}
	if s.User != "" {
		f, err := document.NewFile(s.User, s.Format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, document.WithUser(f))
	}
	if s.Write != "" {
		f, err := document.NewFile(s.Write, s.Format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, document.WithSink(f))
	}
	appID := s.App
	if appID == "" {
		appID = schema.AppID(s.Schema)
	}
	return document.New(appID, root, opts...)
}
