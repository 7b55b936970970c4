// Command sandbox runs the sandbox suites, optionally serving the
// live monitor, and writes reports for the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"digital.vasic.seqtest/pkg/bridge"
	"digital.vasic.seqtest/pkg/config"
	"digital.vasic.seqtest/pkg/logging"
	"digital.vasic.seqtest/pkg/metrics"
	"digital.vasic.seqtest/pkg/monitor"
	"digital.vasic.seqtest/pkg/registry"
	"digital.vasic.seqtest/pkg/report"
	"digital.vasic.seqtest/pkg/runner"
	"digital.vasic.seqtest/pkg/sandbox"
)

// Exit codes.
const (
	exitPassed = 0
	exitFailed = 1
	exitError  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	envFile    string
	plan       string
	results    string
	monitor    string
	list       bool
}

func parseFlags(args []string, out io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.envFile, "env", "", ".env file")
	fs.StringVar(&o.plan, "plan", "", "plan file selecting suites and methods")
	fs.StringVar(&o.results, "results", "", "report directory")
	fs.StringVar(&o.monitor, "monitor", "", "monitor listen address")
	fs.BoolVar(&o.list, "list", false, "list suites and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &o, nil
}

func run(ctx context.Context, args []string, out io.Writer) int {
	o, err := parseFlags(args, out)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitPassed
		}
		return exitError
	}

	cfg, err := config.Load(o.configPath, o.envFile)
	if err != nil {
		fmt.Fprintln(out, err)
		return exitError
	}
	if o.plan != "" {
		cfg.Plan = o.plan
	}
	if o.results != "" {
		cfg.ResultsDir = o.results
	}
	if o.monitor != "" {
		cfg.MonitorAddr = o.monitor
	}

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(out, err)
		return exitError
	}
	defer func() { _ = logger.Close() }()

	reg := registry.NewRegistry()
	if err := sandbox.Register(reg, cfg.Tester()); err != nil {
		logger.Error("register suites", logging.ErrorField(err))
		return exitError
	}

	if o.list {
		for _, s := range reg.List() {
			fmt.Fprintf(out, "%s\t%d methods\t%s\n",
				s.Name, len(s.Methods), s.Description)
		}
		return exitPassed
	}

	results, err := execute(ctx, cfg, reg, logger)
	if err != nil {
		logger.Error("run failed", logging.ErrorField(err))
		return exitError
	}

	suites := bridge.FromSuites(results)
	if err := writeReports(cfg, suites, logger); err != nil {
		logger.Error("write reports", logging.ErrorField(err))
		return exitError
	}

	for _, r := range results {
		if !r.Passed() {
			return exitFailed
		}
	}
	return exitPassed
}

// execute runs the configured suites. The monitor, when enabled,
// serves alongside the runner and stops once the run is over.
func execute(
	ctx context.Context,
	cfg *config.Config,
	reg registry.Registry,
	logger logging.Logger,
) ([]*runner.SuiteResult, error) {
	collector := monitor.NewEventCollector()
	recorder := metrics.NewMemoryRecorder()
	r := runner.NewRunner(
		runner.WithRegistry(reg),
		runner.WithLogger(logger),
		runner.WithRecorder(recorder),
		runner.WithCollector(collector),
		runner.WithTimeout(cfg.Timeout),
	)

	g, gctx := errgroup.WithContext(ctx)
	monCtx, stopMonitor := context.WithCancel(gctx)
	defer stopMonitor()

	if cfg.MonitorAddr != "" {
		srv := monitor.NewServer(
			cfg.MonitorAddr, collector, monitor.NewDashboardData(""),
		)
		logger.Info("monitor listening",
			logging.StringField("addr", cfg.MonitorAddr))
		g.Go(func() error { return srv.Start(monCtx) })
	}

	var results []*runner.SuiteResult
	g.Go(func() error {
		defer stopMonitor()

		var err error
		if cfg.Plan != "" {
			var plan *registry.Plan
			plan, err = registry.LoadPlanFromFile(cfg.Plan)
			if err != nil {
				return err
			}
			results, err = r.RunPlan(gctx, plan)
		} else {
			results, err = r.RunAll(gctx)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("run finished",
		logging.IntField("suites", len(results)),
		logging.IntField("runs", recorder.RunTotal()),
	)
	return results, nil
}

func writeReports(
	cfg *config.Config,
	suites []*bridge.Suite,
	logger logging.Logger,
) error {
	reporters := make([]report.Reporter, 0, len(cfg.Reports))
	for _, f := range cfg.Reports {
		rep, err := report.New(f)
		if err != nil {
			return err
		}
		reporters = append(reporters, rep)
	}

	paths, err := report.WriteAll(cfg.ResultsDir, suites, reporters...)
	if err != nil {
		return err
	}

	summary := report.BuildMasterSummary(suites)
	if err := report.SaveMasterSummary(summary, cfg.ResultsDir); err != nil {
		return err
	}
	if cfg.History != "" {
		if err := report.AppendToHistory(cfg.History, suites...); err != nil {
			return err
		}
	}

	logger.Info("reports written",
		logging.StringField("dir", cfg.ResultsDir),
		logging.IntField("files", len(paths)),
		logging.IntField("methods_passed", summary.Totals.MethodsPassed),
		logging.IntField("methods", summary.Totals.Methods),
	)
	return nil
}
