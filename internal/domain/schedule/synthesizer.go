package schedule

import (
	"fmt"
	"path"
	"time"

	"github.com/okian/dkcron/internal/domain/model"
	"github.com/okian/dkcron/internal/domain/sport"
	"github.com/robfig/cron/v3"
)

// Default command layout of the downstream jobs.
const (
	defaultHomeDir        = "/home/pi/Desktop/dk_salary_owner/"
	defaultPipenvPath     = "/home/pi/.local/bin/pipenv"
	defaultDownloadScript = "download_DK_salary.py"
	defaultResultsScript  = "get_DFS_results.py"
	defaultLogDir         = "/home/pi/Desktop"
	defaultDisplayEnv     = "export DISPLAY=:0"
)

// Jobs holds the two crontab lines generated for a contest.
type Jobs struct {
	Sport  sport.Sport // schedule code passed to the jobs
	Window Window

	// DownloadSpec and ResultsSpec are the five cron time fields.
	DownloadSpec string
	ResultsSpec  string

	// Download and Results are complete crontab lines.
	Download string
	Results  string

	download cron.Schedule
	results  cron.Schedule
}

// NextDownload returns the first download run after t.
func (j Jobs) NextDownload(t time.Time) time.Time { return j.download.Next(t) }

// NextResults returns the first results run after t.
func (j Jobs) NextResults(t time.Time) time.Time { return j.results.Next(t) }

// Synthesizer renders Jobs for contests. It holds no state between calls.
type Synthesizer struct {
	homeDir        string
	pipenvPath     string
	downloadScript string
	resultsScript  string
	logDir         string
	displayEnv     string
}

// NewSynthesizer creates a Synthesizer with configuration options.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		homeDir:        defaultHomeDir,
		pipenvPath:     defaultPipenvPath,
		downloadScript: defaultDownloadScript,
		resultsScript:  defaultResultsScript,
		logDir:         defaultLogDir,
		displayEnv:     defaultDisplayEnv,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Synthesize renders the download and results jobs for c. Sports without a
// slate profile fail with sport.ErrUnsupportedSport.
func (s *Synthesizer) Synthesize(c model.Contest, sp sport.Sport) (Jobs, error) {
	profile, err := sport.LookupProfile(sp)
	if err != nil {
		return Jobs{}, err
	}
	code := sp.ScheduleCode()

	w := NewWindow(c.StartDt, profile.WindowHours)
	dateSpec := w.DateSpec()

	j := Jobs{
		Sport:        code,
		Window:       w,
		DownloadSpec: profile.DownloadPoll + " " + dateSpec,
		ResultsSpec:  profile.ResultsPoll + " " + dateSpec,
	}
	if j.download, err = parse(j.DownloadSpec); err != nil {
		return Jobs{}, err
	}
	if j.results, err = parse(j.ResultsSpec); err != nil {
		return Jobs{}, err
	}

	logPath := s.logPath(code)
	j.Download = fmt.Sprintf("%s %s -s %s -dg %s >> %s 2>&1",
		j.DownloadSpec, s.command(s.downloadScript), code, c.DraftGroup, logPath)

	results := s.command(s.resultsScript)
	if s.displayEnv != "" {
		results = s.displayEnv + " && " + results
	}
	j.Results = fmt.Sprintf("%s %s -s %s -i %s >> %s 2>&1",
		j.ResultsSpec, results, code, c.ID, logPath)

	return j, nil
}

func (s *Synthesizer) command(script string) string {
	return fmt.Sprintf("/bin/cd %s && %s run python %s", s.homeDir, s.pipenvPath, script)
}

func (s *Synthesizer) logPath(code sport.Sport) string {
	return path.Join(s.logDir, string(code)+"_results.log")
}

// parse checks a rendered spec with the standard five-field parser. A window
// spanning a month boundary renders a descending day range and fails here.
func parse(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, spec, err)
	}
	return sched, nil
}
