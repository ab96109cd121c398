package schedule

// Option applies a configuration option to the Synthesizer.
type Option func(*Synthesizer)

// WithHomeDir sets the directory the job scripts run from.
func WithHomeDir(dir string) Option {
	return func(s *Synthesizer) {
		if dir != "" {
			s.homeDir = dir
		}
	}
}

// WithPipenvPath sets the pipenv binary used to run the scripts.
func WithPipenvPath(path string) Option {
	return func(s *Synthesizer) {
		if path != "" {
			s.pipenvPath = path
		}
	}
}

// WithScripts sets the download and results script names.
func WithScripts(download, results string) Option {
	return func(s *Synthesizer) {
		if download != "" {
			s.downloadScript = download
		}
		if results != "" {
			s.resultsScript = results
		}
	}
}

// WithLogDir sets the directory of the per-sport job logs.
func WithLogDir(dir string) Option {
	return func(s *Synthesizer) {
		if dir != "" {
			s.logDir = dir
		}
	}
}

// WithDisplayEnv sets the shell prefix of the results job. An empty value
// drops the prefix.
func WithDisplayEnv(env string) Option {
	return func(s *Synthesizer) {
		s.displayEnv = env
	}
}
