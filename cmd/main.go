package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/dkcron/internal/adapters/lobby"
	app "github.com/okian/dkcron/internal/app"
	"github.com/okian/dkcron/internal/config"
	"github.com/okian/dkcron/internal/domain/schedule"
	"github.com/okian/dkcron/internal/domain/selector"
	"github.com/okian/dkcron/internal/domain/sport"
	"github.com/okian/dkcron/pkg/logger"
	"github.com/okian/dkcron/pkg/metrics"
)

const (
	runTimeout = 2 * time.Minute
	noListing  = -1
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		sportFlag = flag.String("s", "", "Type of contest ("+sport.Choices()+")")
		live      = flag.Bool("l", false, "Get live contests")
		entry     = flag.String("e", "", "Entry fee (25 for $25, default from config)")
		query     = flag.String("q", "", "Search contest name")
		exclude   = flag.String("x", "", "Exclude from search")
		date      = flag.String("d", "", "The start date - format YYYY-MM-DD (default today)")
		file      = flag.String("f", "", "Read contests from a saved lobby response instead of the lobby")
		list      = flag.Int("list", noListing, "Also list contests at the fee with more than N max entries")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 2
	}

	// stdout carries the report; logs go to stderr.
	if err := logger.Init(logger.WithOutput(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 2
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	sp, err := sport.Parse(*sportFlag)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		flag.Usage()
		return 2
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Error(ctx, "invalid timezone", logger.Error(err))
		return 2
	}

	fee, err := cfg.Fee()
	if *entry != "" {
		cfg.EntryFee = *entry
		fee, err = cfg.Fee()
	}
	if err != nil {
		log.Error(ctx, "invalid entry fee", logger.Error(err))
		return 2
	}

	day, err := parseDate(*date, time.Now().In(loc), loc)
	if err != nil {
		log.Error(ctx, "invalid date", logger.Error(err))
		return 2
	}

	var source app.Source
	if *file != "" {
		source = lobby.NewFileSource(*file)
	} else {
		client := lobby.NewClient(
			lobby.WithBaseURL(cfg.LobbyURL),
			lobby.WithTimeout(cfg.HTTPTimeout()),
			lobby.WithUserAgent(cfg.UserAgent),
			lobby.WithCookie(cfg.Cookie),
		)
		log.Info(ctx, "requesting lobby", logger.String("url", client.URL(sp, *live)))
		source = client
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithSource(source),
		app.WithLocation(loc),
		app.WithSynthesizer(schedule.NewSynthesizer(
			schedule.WithHomeDir(cfg.HomeDir),
			schedule.WithPipenvPath(cfg.PipenvPath),
			schedule.WithScripts(cfg.DownloadScript, cfg.ResultsScript),
			schedule.WithLogDir(cfg.LogDir),
			schedule.WithDisplayEnv(cfg.DisplayEnv),
		)),
	)

	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	res, err := svc.Run(runCtx, app.Request{
		Sport:    sp,
		Live:     *live,
		Date:     day,
		EntryFee: fee,
		Query:    *query,
		Exclude:  *exclude,
	})
	defer exportMetrics(ctx, log, cfg.MetricsFile)
	if res == nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return 1
	}

	printStats(os.Stdout, res.Selection.Stats)
	if *list != noListing {
		printContests(os.Stdout, selector.ByEntries(res.Contests, fee, *list))
	}

	if res.Selection.Contest == nil {
		os.Stderr.WriteString("No contests found.\n")
		return 1
	}
	if err != nil {
		log.Error(ctx, "cron jobs not rendered", logger.String("contest_id", res.Selection.Contest.ID), logger.Error(err))
		return 1
	}

	printJobs(os.Stdout, *res.Selection.Contest, *res.Jobs)
	return 0
}

func exportMetrics(ctx context.Context, log logger.Logger, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		log.Warn(ctx, "writing metrics textfile failed", logger.String("path", path), logger.Error(err))
	}
}

// parseDate reads a YYYY-MM-DD date in loc. An empty value means the date of now.
func parseDate(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a valid date: %q", value)
	}
	return t, nil
}
