package simulation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/fszuberski/scoreboard/internal/adapters/http/api"
	service "github.com/fszuberski/scoreboard/internal/app"
)

func newTestServer() (*httptest.Server, *service.Scoreboard) {
	board := service.New()
	mux := http.NewServeMux()
	api.NewServer(board).Register(mux)
	return httptest.NewServer(mux), board
}

func TestRun(t *testing.T) {
	Convey("Given a scoreboard service over HTTP", t, func() {
		srv, board := newTestServer()
		defer srv.Close()
		ctx := context.Background()

		Convey("When a simulation runs to completion", func() {
			stats, err := Run(ctx, Config{
				BaseURL:         srv.URL,
				Matches:         20,
				UpdatesPerMatch: 5,
				Workers:         4,
			}, nil)

			Convey("Then every match and update is accounted for", func() {
				So(err, ShouldBeNil)
				So(stats.MatchesStarted, ShouldEqual, 20)
				So(stats.UpdatesApplied, ShouldEqual, 100)
				So(stats.UpdatesFailed, ShouldEqual, 0)
				So(stats.BoardSize, ShouldEqual, 20)
				So(stats.MatchesFinished, ShouldEqual, 0)
			})
		})

		Convey("When a simulation finishes its matches", func() {
			stats, err := Run(ctx, Config{
				BaseURL:         srv.URL,
				Matches:         5,
				UpdatesPerMatch: -1,
				FinishAll:       true,
			}, nil)

			Convey("Then the board is left empty", func() {
				So(err, ShouldBeNil)
				So(stats.UpdatesApplied, ShouldEqual, 0)
				So(stats.MatchesFinished, ShouldEqual, 5)
				ongoing, err := board.OngoingMatches(ctx)
				So(err, ShouldBeNil)
				So(ongoing, ShouldBeEmpty)
			})
		})

		Convey("When the board already holds a foreign match", func() {
			_, err := board.StartMatch(ctx, "Mexico", "Canada")
			So(err, ShouldBeNil)

			_, err = Run(ctx, Config{BaseURL: srv.URL, Matches: 3, UpdatesPerMatch: 1}, nil)

			Convey("Then verification fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "board verification failed")
			})
		})
	})

	Convey("Given no service", t, func() {
		_, err := Run(context.Background(), Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)

		Convey("Then the health check fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}

func TestVerifyBoard(t *testing.T) {
	Convey("Given two played matches", t, func() {
		t0 := time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)
		a := &played{ID: uuid.NewString(), HomeScore: 1, AwayScore: 1}
		b := &played{ID: uuid.NewString(), HomeScore: 3, AwayScore: 0}
		entry := func(p *played, start time.Time) boardEntry {
			return boardEntry{
				ID:         p.ID,
				HomeScore:  p.HomeScore,
				AwayScore:  p.AwayScore,
				TotalScore: p.HomeScore + p.AwayScore,
				StartTime:  start,
			}
		}

		Convey("A board in summary order passes", func() {
			board := []boardEntry{entry(b, t0), entry(a, t0.Add(time.Minute))}
			So(verifyBoard([]*played{a, b}, board), ShouldBeNil)
		})

		Convey("A board out of order fails", func() {
			board := []boardEntry{entry(a, t0.Add(time.Minute)), entry(b, t0)}
			So(verifyBoard([]*played{a, b}, board), ShouldNotBeNil)
		})

		Convey("A stale score fails", func() {
			stale := entry(b, t0)
			stale.HomeScore, stale.TotalScore = 2, 2
			So(verifyBoard([]*played{a, b}, []boardEntry{entry(a, t0), stale}), ShouldNotBeNil)
		})

		Convey("Equal totals order by later start", func() {
			b.HomeScore, b.AwayScore = 2, 0
			So(ordered(entry(a, t0.Add(time.Minute)), entry(b, t0)), ShouldBeTrue)
			So(ordered(entry(b, t0), entry(a, t0.Add(time.Minute))), ShouldBeFalse)
		})
	})
}
