package lobby_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/dkcron/internal/adapters/lobby"
	"github.com/okian/dkcron/internal/domain/sport"
	. "github.com/smartystreets/goconvey/convey"
)

const envelopeBody = `{
	"SelectedSport": 4,
	"Contests": [
		{"id": "1", "n": "NBA $25 Double Up"},
		{"id": "2", "n": "NBA $3 Special"}
	],
	"DraftGroups": [{"DraftGroupId": 8014}]
}`

func TestDecodeContests(t *testing.T) {
	Convey("Given lobby response bodies", t, func() {
		Convey("When the body is an object with Contests", func() {
			records, err := lobby.DecodeContests([]byte(envelopeBody))

			Convey("Then the contest records are returned", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(string(records[0]), ShouldContainSubstring, `"NBA $25 Double Up"`)
			})
		})

		Convey("When the body is a bare list", func() {
			records, err := lobby.DecodeContests([]byte(` [{"id": "1"}] `))

			Convey("Then the list items are returned", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
			})
		})

		Convey("When the object has no Contests key", func() {
			_, err := lobby.DecodeContests([]byte(`{"DraftGroups": []}`))

			Convey("Then it is an unexpected response", func() {
				So(errors.Is(err, lobby.ErrUnexpectedResponse), ShouldBeTrue)
			})
		})

		Convey("When the body is a scalar or empty", func() {
			_, errScalar := lobby.DecodeContests([]byte(`"maintenance"`))
			_, errEmpty := lobby.DecodeContests([]byte("  "))

			Convey("Then both are unexpected responses", func() {
				So(errors.Is(errScalar, lobby.ErrUnexpectedResponse), ShouldBeTrue)
				So(errors.Is(errEmpty, lobby.ErrUnexpectedResponse), ShouldBeTrue)
			})
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given a lobby server", t, func() {
		var gotPath, gotQuery, gotCookie, gotUA, gotXRW string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("sport")
			gotCookie = r.Header.Get("Cookie")
			gotUA = r.Header.Get("User-Agent")
			gotXRW = r.Header.Get("X-Requested-With")
			if r.URL.Query().Get("sport") == "NHL" {
				http.Error(w, "no slate", http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(envelopeBody))
		}))
		defer srv.Close()

		client := lobby.NewClient(
			lobby.WithBaseURL(srv.URL+"/"),
			lobby.WithCookie("uk=abc"),
			lobby.WithUserAgent("dkcron-test"),
			lobby.WithTimeout(5*time.Second),
		)

		Convey("When fetching upcoming contests", func() {
			records, err := client.Contests(context.Background(), sport.NBA, false)

			Convey("Then it calls the contests endpoint with the session headers", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
				So(gotPath, ShouldEqual, "/lobby/getcontests")
				So(gotQuery, ShouldEqual, "NBA")
				So(gotCookie, ShouldEqual, "uk=abc")
				So(gotUA, ShouldEqual, "dkcron-test")
				So(gotXRW, ShouldEqual, "XMLHttpRequest")
			})
		})

		Convey("When fetching live contests", func() {
			_, err := client.Contests(context.Background(), sport.GOLF, true)

			Convey("Then it calls the live endpoint with the lobby code", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/lobby/getlivecontests")
				So(gotQuery, ShouldEqual, "GOLF")
			})
		})

		Convey("When the lobby answers with an error status", func() {
			_, err := client.Contests(context.Background(), sport.NHL, false)

			Convey("Then it is a fetch error carrying the status", func() {
				So(errors.Is(err, lobby.ErrFetch), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "status=503")
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := client.Contests(ctx, sport.NBA, false)

			Convey("Then it is a fetch error", func() {
				So(errors.Is(err, lobby.ErrFetch), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestClientURL(t *testing.T) {
	Convey("Given a default client", t, func() {
		client := lobby.NewClient()

		Convey("Then the URLs point at the public lobby", func() {
			So(client.URL(sport.NBA, false), ShouldEqual, "https://www.draftkings.com/lobby/getcontests?sport=NBA")
			So(client.URL(sport.MLB, true), ShouldEqual, "https://www.draftkings.com/lobby/getlivecontests?sport=MLB")
		})
	})
}

func TestFileSource(t *testing.T) {
	Convey("Given a saved lobby response", t, func() {
		path := filepath.Join(t.TempDir(), "contests.json")
		So(os.WriteFile(path, []byte(envelopeBody), 0o600), ShouldBeNil)

		Convey("When reading it", func() {
			records, err := lobby.NewFileSource(path).Contests(context.Background(), sport.NBA, false)

			Convey("Then the records are returned", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 2)
			})
		})

		Convey("When the file is missing", func() {
			_, err := lobby.NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Contests(context.Background(), sport.NBA, false)

			Convey("Then it is a fetch error", func() {
				So(errors.Is(err, lobby.ErrFetch), ShouldBeTrue)
			})
		})
	})
}
