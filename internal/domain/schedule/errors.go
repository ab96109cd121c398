package schedule

import "errors"

// Sentinel kinds for schedule errors.
var (
	ErrInvalidSchedule = errors.New("rendered cron schedule is invalid")
)
