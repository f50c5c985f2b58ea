package ranking_test

import (
	"testing"
	"time"

	"github.com/fszuberski/scoreboard/internal/domain/model"
	"github.com/fszuberski/scoreboard/internal/domain/ranking"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func match(id uuid.UUID, home, away int, start time.Time) model.Match {
	h, err := model.NewTeamScore("Team1", home)
	if err != nil {
		panic(err)
	}
	a, err := model.NewTeamScore("Team2", away)
	if err != nil {
		panic(err)
	}
	m, err := model.NewMatch(id, h, a, start)
	if err != nil {
		panic(err)
	}
	return m
}

func TestByTotalScore(t *testing.T) {
	Convey("Given the total score comparator", t, func() {
		now := time.Now()

		Convey("When total scores are equal", func() {
			So(ranking.ByTotalScore(match(uuid.New(), 2, 2, now), match(uuid.New(), 2, 2, now)), ShouldEqual, 0)
		})

		Convey("When the first total score is higher", func() {
			So(ranking.ByTotalScore(match(uuid.New(), 5, 2, now), match(uuid.New(), 2, 2, now)), ShouldBeGreaterThan, 0)
		})

		Convey("When the first total score is lower", func() {
			So(ranking.ByTotalScore(match(uuid.New(), 2, 1, now), match(uuid.New(), 2, 2, now)), ShouldBeLessThan, 0)
		})
	})
}

func TestByStartTime(t *testing.T) {
	Convey("Given the start time comparator", t, func() {
		now := time.Now()

		Convey("When start times are equal", func() {
			So(ranking.ByStartTime(match(uuid.New(), 2, 2, now), match(uuid.New(), 2, 2, now)), ShouldEqual, 0)
		})

		Convey("When the first match started later", func() {
			So(ranking.ByStartTime(match(uuid.New(), 2, 2, now.Add(5*time.Minute)), match(uuid.New(), 2, 2, now)), ShouldBeGreaterThan, 0)
		})

		Convey("When the first match started earlier", func() {
			So(ranking.ByStartTime(match(uuid.New(), 2, 2, now.Add(-5*time.Minute)), match(uuid.New(), 2, 2, now)), ShouldBeLessThan, 0)
		})
	})
}

func TestTotalScoreAndStartTime(t *testing.T) {
	Convey("Given the chained comparator", t, func() {
		now := time.Now()
		earlier := now.Add(-5 * time.Minute)
		later := now.Add(5 * time.Minute)
		cmp := ranking.TotalScoreAndStartTime

		cases := []struct {
			name string
			a, b model.Match
			sign int
		}{
			{"equal total and start", match(uuid.New(), 2, 2, now), match(uuid.New(), 2, 2, now), 0},
			{"equal total, first earlier", match(uuid.New(), 2, 1, earlier), match(uuid.New(), 1, 2, now), -1},
			{"equal total, first later", match(uuid.New(), 2, 1, later), match(uuid.New(), 1, 2, now), 1},
			{"higher total, same start", match(uuid.New(), 5, 2, now), match(uuid.New(), 2, 2, now), 1},
			{"higher total, earlier start", match(uuid.New(), 5, 2, earlier), match(uuid.New(), 2, 2, now), 1},
			{"higher total, later start", match(uuid.New(), 5, 2, later), match(uuid.New(), 2, 2, now), 1},
			{"lower total, same start", match(uuid.New(), 2, 1, now), match(uuid.New(), 2, 2, now), -1},
			{"lower total, earlier start", match(uuid.New(), 2, 1, earlier), match(uuid.New(), 2, 2, now), -1},
			{"lower total, later start", match(uuid.New(), 2, 1, later), match(uuid.New(), 2, 2, now), -1},
		}

		for _, tc := range cases {
			Convey("When comparing "+tc.name, func() {
				got := cmp(tc.a, tc.b)
				switch tc.sign {
				case 0:
					So(got, ShouldEqual, 0)
				case 1:
					So(got, ShouldBeGreaterThan, 0)
				default:
					So(got, ShouldBeLessThan, 0)
				}
			})
		}
	})
}

func TestSummaryOrder(t *testing.T) {
	Convey("Given the worked example of five matches", t, func() {
		base := time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC)
		mexico := match(uuid.New(), 0, 5, base)
		spain := match(uuid.New(), 10, 2, base.Add(time.Minute))
		germany := match(uuid.New(), 2, 2, base.Add(2*time.Minute))
		uruguay := match(uuid.New(), 6, 6, base.Add(3*time.Minute))
		argentina := match(uuid.New(), 3, 1, base.Add(4*time.Minute))
		input := []model.Match{mexico, spain, germany, uruguay, argentina}

		Convey("When sorting for the summary", func() {
			got := ranking.Sort(input, ranking.Summary)

			Convey("Then totals are descending with the latest start first on ties", func() {
				So(len(got), ShouldEqual, 5)
				So(got[0].ID(), ShouldEqual, uruguay.ID())
				So(got[1].ID(), ShouldEqual, spain.ID())
				So(got[2].ID(), ShouldEqual, mexico.ID())
				So(got[3].ID(), ShouldEqual, argentina.ID())
				So(got[4].ID(), ShouldEqual, germany.ID())
			})

			Convey("And the input slice is left untouched", func() {
				So(input[0].ID(), ShouldEqual, mexico.ID())
				So(input[4].ID(), ShouldEqual, argentina.ID())
			})
		})
	})

	Convey("Given matches equal on total score and start time", t, func() {
		now := time.Now()
		a := match(uuid.MustParse("00000000-0000-4000-8000-000000000002"), 1, 1, now)
		b := match(uuid.MustParse("00000000-0000-4000-8000-000000000001"), 2, 0, now)

		Convey("Then id order decides regardless of input order", func() {
			first := ranking.Sort([]model.Match{a, b}, ranking.Summary)
			second := ranking.Sort([]model.Match{b, a}, ranking.Summary)
			So(first[0].ID(), ShouldEqual, b.ID())
			So(second[0].ID(), ShouldEqual, b.ID())
		})
	})

	Convey("Given no matches", t, func() {
		Convey("Then sorting yields an empty, non-nil slice", func() {
			got := ranking.Sort(nil, ranking.Summary)
			So(got, ShouldNotBeNil)
			So(len(got), ShouldEqual, 0)
		})
	})
}
