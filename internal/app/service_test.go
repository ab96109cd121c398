package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	service "github.com/okian/dkcron/internal/app"
	"github.com/okian/dkcron/internal/domain/model"
	"github.com/okian/dkcron/internal/domain/schedule"
	"github.com/okian/dkcron/internal/domain/sport"
	"github.com/okian/dkcron/pkg/logger"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

type stubSource struct {
	records []json.RawMessage
	err     error

	gotSport sport.Sport
	gotLive  bool
}

func (s *stubSource) Contests(_ context.Context, sp sport.Sport, live bool) ([]json.RawMessage, error) {
	s.gotSport, s.gotLive = sp, live
	return s.records, s.err
}

// record renders a lobby record starting at start.
func record(id string, name string, entries int, fee string, mec int, doubleUp bool, start time.Time) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"id":%q,"n":%q,"po":1000,"m":%d,"a":%s,"ec":0,"mec":%d,"attr":{"IsDoubleUp":%t},"sd":"/Date(%d)/","dg":"dg-%s"}`,
		id, name, entries, fee, mec, doubleUp, start.UnixMilli(), id))
}

func TestService_Run(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	evening := time.Date(2024, time.March, 1, 19, 0, 0, 0, loc)
	request := service.Request{
		Sport:    sport.NBA,
		Date:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EntryFee: decimal.NewFromInt(25),
	}

	Convey("Given a source with a matching contest", t, func() {
		src := &stubSource{records: []json.RawMessage{
			record("small", "NBA $25 Double Up", 100, "25", 1, true, evening),
			record("big", "NBA $25 Double Up", 4000, "25", 1, true, evening),
			record("gpp", "NBA $25 GPP", 90000, "25", 150, false, evening),
		}}
		svc := service.New(service.WithSource(src), service.WithLocation(loc))

		Convey("When running", func() {
			res, err := svc.Run(context.Background(), request)

			Convey("Then the largest double-up is scheduled", func() {
				So(err, ShouldBeNil)
				So(res.RunID, ShouldNotBeEmpty)
				So(res.Contests, ShouldHaveLength, 3)
				So(res.Selection.Matched, ShouldEqual, 2)
				So(res.Selection.Contest.ID, ShouldEqual, "big")
				So(res.Jobs, ShouldNotBeNil)
				So(res.Jobs.DownloadSpec, ShouldEqual, "*/10 00,19-23 01-02 03 *")
				So(res.Jobs.Download, ShouldContainSubstring, "-s NBA -dg dg-big")
				So(res.Jobs.Results, ShouldContainSubstring, "-s NBA -i big")
			})

			Convey("Then the stats cover the whole listing", func() {
				day := res.Selection.Stats["2024-03-01"]
				So(day.Count, ShouldEqual, 3)
				So(day.DoubleUps["25"], ShouldEqual, 2)
			})

			Convey("Then the source was asked for the requested sport", func() {
				So(src.gotSport, ShouldEqual, sport.NBA)
				So(src.gotLive, ShouldBeFalse)
			})
		})
	})

	Convey("Given a source without a match", t, func() {
		src := &stubSource{records: []json.RawMessage{
			record("three", "NBA $3 Double Up", 100, "3", 1, true, evening),
		}}
		svc := service.New(service.WithSource(src), service.WithLocation(loc))

		Convey("When running", func() {
			res, err := svc.Run(context.Background(), request)

			Convey("Then the result is empty but not an error", func() {
				So(err, ShouldBeNil)
				So(res.Selection.Contest, ShouldBeNil)
				So(res.Jobs, ShouldBeNil)
				So(res.Selection.Stats["2024-03-01"].DoubleUps["3"], ShouldEqual, 1)
			})
		})
	})

	Convey("Given a sport without a slate profile", t, func() {
		src := &stubSource{records: []json.RawMessage{
			record("nfl", "NFL $25 Double Up", 100, "25", 1, true, evening),
		}}
		svc := service.New(service.WithSource(src), service.WithLocation(loc))
		req := request
		req.Sport = sport.NFL

		Convey("When running", func() {
			res, err := svc.Run(context.Background(), req)

			Convey("Then the selection is reported with an unsupported sport error", func() {
				So(errors.Is(err, sport.ErrUnsupportedSport), ShouldBeTrue)
				So(res, ShouldNotBeNil)
				So(res.Selection.Contest.ID, ShouldEqual, "nfl")
				So(res.Jobs, ShouldBeNil)
			})
		})
	})

	Convey("Given a source returning a malformed record", t, func() {
		src := &stubSource{records: []json.RawMessage{json.RawMessage(`{"id":"1"}`)}}
		svc := service.New(service.WithSource(src))

		Convey("Then the run fails fast", func() {
			res, err := svc.Run(context.Background(), request)
			So(res, ShouldBeNil)
			So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
		})
	})

	Convey("Given a failing source", t, func() {
		boom := errors.New("lobby down")
		svc := service.New(service.WithSource(&stubSource{err: boom}))

		Convey("Then the source error is returned", func() {
			_, err := svc.Run(context.Background(), request)
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})

	Convey("Given a service without a source", t, func() {
		svc := service.New()

		Convey("Then running fails", func() {
			_, err := svc.Run(context.Background(), request)
			So(errors.Is(err, service.ErrNoSource), ShouldBeTrue)
		})
	})

	Convey("Given a custom synthesizer", t, func() {
		src := &stubSource{records: []json.RawMessage{
			record("only", "NBA $25 Double Up", 100, "25", 1, true, evening),
		}}
		svc := service.New(
			service.WithSource(src),
			service.WithLocation(loc),
			service.WithSynthesizer(schedule.NewSynthesizer(schedule.WithLogDir("/tmp/dk"))),
		)

		Convey("Then its layout is used", func() {
			res, err := svc.Run(context.Background(), request)
			So(err, ShouldBeNil)
			So(res.Jobs.Download, ShouldEndWith, ">> /tmp/dk/NBA_results.log 2>&1")
		})
	})
}
