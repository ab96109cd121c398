package sport_test

import (
	"errors"
	"testing"

	"github.com/okian/dkcron/internal/domain/sport"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given lobby sport codes", t, func() {
		Convey("When parsing a known code in any case", func() {
			s, err := sport.Parse(" nba ")

			Convey("Then it should normalize to upper case", func() {
				So(err, ShouldBeNil)
				So(s, ShouldEqual, sport.NBA)
			})
		})

		Convey("When parsing PGA", func() {
			s, err := sport.Parse("PGA")

			Convey("Then it should map to the lobby code GOLF", func() {
				So(err, ShouldBeNil)
				So(s, ShouldEqual, sport.GOLF)
			})
		})

		Convey("When parsing an unknown code", func() {
			_, err := sport.Parse("CRICKET")

			Convey("Then it should fail with the accepted choices", func() {
				So(errors.Is(err, sport.ErrUnknownSport), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, sport.Choices())
			})
		})
	})
}

func TestLookupProfile(t *testing.T) {
	Convey("Given the slate profile table", t, func() {
		Convey("Then every scheduled sport should have its fixed window and polls", func() {
			cases := []struct {
				sport    sport.Sport
				hours    int
				download string
				results  string
			}{
				{sport.NBA, 5, "*/10", "*/5"},
				{sport.MLB, 7, "1-59/15", "2-59/10"},
				{sport.PGA, 8, "3-59/30", "4-59/15"},
				{sport.TEN, 15, "4-59/15", "5-59/10"},
			}
			for _, tc := range cases {
				p, err := sport.LookupProfile(tc.sport)
				So(err, ShouldBeNil)
				So(p.WindowHours, ShouldEqual, tc.hours)
				So(p.DownloadPoll, ShouldEqual, tc.download)
				So(p.ResultsPoll, ShouldEqual, tc.results)
			}
		})

		Convey("Then GOLF should resolve through its schedule code", func() {
			So(sport.GOLF.ScheduleCode(), ShouldEqual, sport.PGA)
			p, err := sport.LookupProfile(sport.GOLF)
			So(err, ShouldBeNil)
			So(p.WindowHours, ShouldEqual, 8)
		})

		Convey("Then sports outside the table should be rejected explicitly", func() {
			for _, s := range []sport.Sport{sport.NFL, sport.CFB, sport.NHL} {
				_, err := sport.LookupProfile(s)
				So(errors.Is(err, sport.ErrUnsupportedSport), ShouldBeTrue)
			}
		})
	})
}
