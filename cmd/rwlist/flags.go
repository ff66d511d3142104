package main

import (
	"github.com/spf13/pflag"

	"github.com/Rogov-KS/rwlist/workload"
)

// workloadFlags mirrors the classic positional arguments m n p k t.
// Values set on the command line win over the --config file.
type workloadFlags struct {
	cfg        workload.Config
	configPath string
}

func (wf *workloadFlags) register(fs *pflag.FlagSet) {
	d := workload.DefaultConfig()
	fs.IntVarP(&wf.cfg.InitialKeys, "initial-keys", "m", d.InitialKeys, "keys inserted before the workers start")
	fs.IntVarP(&wf.cfg.TotalOps, "ops", "n", d.TotalOps, "total operations, split evenly between workers")
	fs.Float64VarP(&wf.cfg.SearchPercent, "search", "p", d.SearchPercent, "share of searches, in [0, 1]")
	fs.Float64VarP(&wf.cfg.InsertPercent, "insert", "k", d.InsertPercent, "share of inserts, in [0, 1]; deletes take the rest")
	fs.IntVarP(&wf.cfg.Threads, "threads", "t", d.Threads, "number of workers")
	fs.Uint64Var(&wf.cfg.Seed, "seed", d.Seed, "base seed; worker r uses seed*(r+1)")
	fs.IntVar(&wf.cfg.MaxKey, "max-key", d.MaxKey, "keys are drawn from [0, max-key)")
	fs.BoolVar(&wf.cfg.Dump, "dump", d.Dump, "print the final list")
	fs.StringVar(&wf.configPath, "config", "", "path to .yaml workload config")
}

func (wf *workloadFlags) resolve(fs *pflag.FlagSet) (workload.Config, error) {
	if wf.configPath == "" {
		return wf.cfg, wf.cfg.Validate()
	}

	cfg, err := workload.LoadConfig(wf.configPath)
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "initial-keys":
			cfg.InitialKeys = wf.cfg.InitialKeys
		case "ops":
			cfg.TotalOps = wf.cfg.TotalOps
		case "search":
			cfg.SearchPercent = wf.cfg.SearchPercent
		case "insert":
			cfg.InsertPercent = wf.cfg.InsertPercent
		case "threads":
			cfg.Threads = wf.cfg.Threads
		case "seed":
			cfg.Seed = wf.cfg.Seed
		case "max-key":
			cfg.MaxKey = wf.cfg.MaxKey
		case "dump":
			cfg.Dump = wf.cfg.Dump
		}
	})
	return cfg, cfg.Validate()
}
