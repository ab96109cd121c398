// Package sport enumerates lobby sports and the live-slate profile used to
// schedule jobs around a contest.
package sport

import (
	"fmt"
	"strings"
)

// Sport is a lobby sport code.
type Sport string

// Known sport codes. GOLF is the lobby code; PGA is its schedule code.
const (
	NBA  Sport = "NBA"
	NFL  Sport = "NFL"
	CFB  Sport = "CFB"
	GOLF Sport = "GOLF"
	NHL  Sport = "NHL"
	MLB  Sport = "MLB"
	TEN  Sport = "TEN"
	PGA  Sport = "PGA"
)

// lobbySports are accepted on the command line, in display order.
var lobbySports = []Sport{NBA, NFL, CFB, GOLF, NHL, MLB, TEN}

// Profile describes how long a slate runs and how often the downstream
// jobs poll while it does. Poll specs are cron minute fields.
type Profile struct {
	WindowHours  int
	DownloadPoll string
	ResultsPoll  string
}

var profiles = map[Sport]Profile{
	NBA: {WindowHours: 5, DownloadPoll: "*/10", ResultsPoll: "*/5"},
	MLB: {WindowHours: 7, DownloadPoll: "1-59/15", ResultsPoll: "2-59/10"},
	PGA: {WindowHours: 8, DownloadPoll: "3-59/30", ResultsPoll: "4-59/15"},
	TEN: {WindowHours: 15, DownloadPoll: "4-59/15", ResultsPoll: "5-59/10"},
}

// Parse validates a lobby sport code, ignoring case and surrounding space.
func Parse(s string) (Sport, error) {
	code := Sport(strings.ToUpper(strings.TrimSpace(s)))
	if code == PGA {
		return GOLF, nil
	}
	for _, known := range lobbySports {
		if code == known {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSport, s, Choices())
}

// Choices lists the accepted lobby codes, comma separated.
func Choices() string {
	names := make([]string, len(lobbySports))
	for i, s := range lobbySports {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// ScheduleCode returns the code used by the downstream jobs.
func (s Sport) ScheduleCode() Sport {
	if s == GOLF {
		return PGA
	}
	return s
}

// LookupProfile returns the slate profile for s. Sports without a profile
// cannot be scheduled.
func LookupProfile(s Sport) (Profile, error) {
	p, ok := profiles[s.ScheduleCode()]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnsupportedSport, s)
	}
	return p, nil
}

func (s Sport) String() string { return string(s) }
