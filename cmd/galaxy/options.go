package main

import (
	"flag"

	"galaxy/internal/config"
	"galaxy/internal/env"
	"galaxy/internal/galaxygen"
)

// worldOptions are the flags every subcommand shares.
type worldOptions struct {
	configPath string
	savePath   string
	random     int
	seed       uint64
	spread     float64
	spin       float64
}

func (o *worldOptions) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", env.String(env.ConfigKey, config.DefaultPath), "galaxy config (.json, .yaml or .toml)")
	fs.StringVar(&o.savePath, "save", "", "write the effective config (including generated planets) to this path")
	fs.IntVar(&o.random, "random", 0, "replace the planets with n generated ones")
	fs.Uint64Var(&o.seed, "seed", 0, "generator seed (0: time based)")
	fs.Float64Var(&o.spread, "spread", galaxygen.DefaultOptions().Spread, "generated galaxy radius")
	fs.Float64Var(&o.spin, "spin", 0, "generated galaxy rotation speed at the rim")
}

// generate replaces cfg's planets when -random was given.
func (o *worldOptions) generate(cfg *config.Config) error {
	if o.random <= 0 {
		return nil
	}
	opts := galaxygen.DefaultOptions()
	opts.Count = o.random
	opts.Seed = o.seed
	opts.Spread = o.spread
	opts.Spin = o.spin
	opts.Center = cfg.CameraPosition
	return galaxygen.Apply(cfg, opts)
}
