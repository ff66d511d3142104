package workload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rogov-KS/rwlist/rwgate"
	"github.com/Rogov-KS/rwlist/sortedlist"
)

var (
	ErrLengthMismatch = errors.New("list length does not match counters")
	ErrGateBusy       = errors.New("gate still held after all workers joined")
)

// Report is the outcome of a run.
type Report struct {
	RunID    string        `yaml:"run_id"`
	Config   Config        `yaml:"config"`
	Initial  int           `yaml:"initial"`
	Final    int           `yaml:"final"`
	Counters Counters      `yaml:"counters"`
	Dropped  int           `yaml:"dropped"`
	Elapsed  time.Duration `yaml:"elapsed"`
	Keys     []int         `yaml:"keys,omitempty"`
}

// Check verifies that the final length is explained by the counters.
func (r Report) Check() error {
	expected := r.Initial + r.Counters.Inserted() - r.Counters.Deleted()
	if r.Final != expected {
		return fmt.Errorf("%w: initial %d + inserted %d - deleted %d = %d, list has %d",
			ErrLengthMismatch, r.Initial, r.Counters.Inserted(), r.Counters.Deleted(), expected, r.Final)
	}
	return nil
}

type Option func(*Runner)

func WithClock(clock clockwork.Clock) Option {
	return func(r *Runner) { r.clock = clock }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// Runner drives one run: it spawns the workers over a shared gate and list,
// joins them and checks the result. A Runner is good for a single Run.
type Runner struct {
	cfg    Config
	gate   *rwgate.Gate
	list   *sortedlist.List
	clock  clockwork.Clock
	logger *zap.Logger
	tally  tally
}

// NewRunner validates cfg and binds it to gate and list. Both must outlive
// the run and must not be touched by anyone else until Run returns.
func NewRunner(cfg Config, gate *rwgate.Gate, list *sortedlist.List, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:    cfg,
		gate:   gate,
		list:   list,
		clock:  clockwork.NewRealClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Worker is the entry point of worker rank. It merges its counters into
// the run totals once, on exit.
func (r *Runner) Worker(rank int) {
	local := Work(rank, r.cfg, r.gate, r.list)
	r.tally.merge(local)
	r.logger.Debug("worker finished",
		zap.Int("rank", rank),
		zap.Int("member", local.Member),
		zap.Int("insert", local.Insert),
		zap.Int("delete", local.Delete),
	)
}

// Run executes the workload. ctx is consulted only before workers start;
// once started, the run goes to completion.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return Report{}, fmt.Errorf("generate run id: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	rep := Report{
		RunID:   id.String(),
		Config:  r.cfg,
		Initial: r.list.Len(),
		Dropped: r.cfg.Dropped(),
	}
	logger := r.logger.With(zap.String("run_id", rep.RunID))
	logger.Info("starting workers",
		zap.Int("threads", r.cfg.Threads),
		zap.Int("ops_per_thread", r.cfg.OpsPerThread()),
		zap.Int("initial", rep.Initial),
	)
	if rep.Dropped > 0 {
		logger.Warn("total ops not divisible by threads, remainder dropped", zap.Int("dropped", rep.Dropped))
	}

	var g errgroup.Group
	start := r.clock.Now()
	for rank := 0; rank < r.cfg.Threads; rank++ {
		g.Go(func() error {
			r.Worker(rank)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}
	rep.Elapsed = r.clock.Since(start)

	rep.Counters = r.tally.snapshot()
	rep.Final = r.list.Len()
	if r.cfg.Dump {
		rep.Keys = r.list.Keys()
	}

	logger.Info("workers joined",
		zap.Duration("elapsed", rep.Elapsed),
		zap.Int("final", rep.Final),
		zap.Int("ops", rep.Counters.Total()),
	)

	if !r.gate.Idle() {
		return rep, fmt.Errorf("%w: %+v", ErrGateBusy, r.gate.State())
	}
	if err := r.list.Validate(); err != nil {
		return rep, err
	}
	return rep, rep.Check()
}

// Execute builds a fresh gate and list, populates the list, runs the
// workload and tears the list down.
func Execute(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	gate := rwgate.New()
	list := sortedlist.New()
	defer list.Clear()

	inserted := Populate(list, cfg.InitialKeys, cfg.Seed, cfg.MaxKey)

	r, err := NewRunner(cfg, gate, list, opts...)
	if err != nil {
		return Report{}, err
	}
	r.logger.Debug("list populated", zap.Int("requested", cfg.InitialKeys), zap.Int("inserted", inserted))
	return r.Run(ctx)
}
