package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/asistencia/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

func lima(t *testing.T) *time.Location {
	t.Helper()
	return time.FixedZone("PET", -5*60*60)
}

func TestBlockTime(t *testing.T) {
	Convey("Given a 13:00 base and the default recess", t, func() {
		base := time.Date(2025, time.May, 12, 13, 0, 27, 500, lima(t))
		recess := schedule.DefaultRecess

		Convey("When computing the first block start", func() {
			got := schedule.BlockTime(base, 1, recess, schedule.BlockDuration, false)

			Convey("Then it equals the base with seconds dropped", func() {
				So(got, ShouldEqual, time.Date(2025, time.May, 12, 13, 0, 0, 0, base.Location()))
			})
		})

		Convey("When the block index is out of range", func() {
			Convey("Then low indices behave like block 1", func() {
				for _, idx := range []int{0, -1, -40} {
					So(schedule.BlockTime(base, idx, recess, 45, false), ShouldEqual, schedule.BlockTime(base, 1, recess, 45, false))
					So(schedule.BlockTime(base, idx, recess, 45, true), ShouldEqual, schedule.BlockTime(base, 1, recess, 45, true))
				}
			})

			Convey("And high indices behave like block 7", func() {
				for _, idx := range []int{8, 9, 100} {
					So(schedule.BlockTime(base, idx, recess, 45, false), ShouldEqual, schedule.BlockTime(base, 7, recess, 45, false))
					So(schedule.BlockTime(base, idx, recess, 45, true), ShouldEqual, schedule.BlockTime(base, 7, recess, 45, true))
				}
			})
		})

		Convey("When comparing entry and exit of the same block", func() {
			Convey("Then exit is always one block after entry", func() {
				for idx := schedule.MinBlock; idx <= schedule.MaxBlock; idx++ {
					entry := schedule.BlockTime(base, idx, recess, 45, false)
					exit := schedule.BlockTime(base, idx, recess, 45, true)
					So(exit.Sub(entry), ShouldEqual, 45*time.Minute)
				}
			})
		})

		Convey("When blocks straddle the recess", func() {
			Convey("Then blocks up to the recess carry no recess minutes", func() {
				for idx := 1; idx <= recess.BlockBeforeRecess; idx++ {
					got := schedule.BlockTime(base, idx, recess, 45, false)
					So(got.Sub(time.Date(2025, time.May, 12, 13, 0, 0, 0, base.Location())), ShouldEqual, time.Duration((idx-1)*45)*time.Minute)
				}
			})

			Convey("And later blocks carry exactly one recess term", func() {
				start := time.Date(2025, time.May, 12, 13, 0, 0, 0, base.Location())
				for idx := recess.BlockBeforeRecess + 1; idx <= schedule.MaxBlock; idx++ {
					got := schedule.BlockTime(base, idx, recess, 45, false)
					So(got.Sub(start), ShouldEqual, time.Duration((idx-1)*45+15)*time.Minute)
				}
			})
		})

		Convey("When minutes overflow past midnight", func() {
			late := time.Date(2025, time.May, 12, 22, 30, 0, 0, base.Location())
			got := schedule.BlockTime(late, 7, recess, 45, true)

			Convey("Then the overflow carries into the next day", func() {
				So(got, ShouldEqual, time.Date(2025, time.May, 13, 4, 0, 0, 0, base.Location()))
			})
		})
	})
}

func TestAssemble(t *testing.T) {
	Convey("Given a 13:00 base, recess after block 4 lasting 15 minutes", t, func() {
		base := time.Date(2025, time.May, 12, 13, 0, 0, 0, lima(t))
		recess := schedule.RecessConfig{BlockBeforeRecess: 4, RecessMinutes: 15}

		Convey("When a teacher covers blocks 1 through 5", func() {
			out := schedule.Assemble(base, recess, []schedule.Window{
				{PersonID: "70123456", FirstBlock: 1, LastBlockExclusive: 6},
			})

			Convey("Then entry is 13:00 and exit is 17:00", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].PersonID, ShouldEqual, "70123456")
				So(out[0].Entry.Format("15:04"), ShouldEqual, "13:00")
				So(out[0].Exit.Format("15:04"), ShouldEqual, "17:00")
			})
		})

		Convey("When a teacher finishes before the recess", func() {
			out := schedule.Assemble(base, recess, []schedule.Window{
				{PersonID: "70123457", FirstBlock: 1, LastBlockExclusive: 4},
			})

			Convey("Then exit is 15:15 without recess minutes", func() {
				So(out[0].Entry.Format("15:04"), ShouldEqual, "13:00")
				So(out[0].Exit.Format("15:04"), ShouldEqual, "15:15")
			})
		})

		Convey("When a teacher starts after the recess", func() {
			out := schedule.Assemble(base, recess, []schedule.Window{
				{PersonID: "70123458", FirstBlock: 6, LastBlockExclusive: 8},
			})

			Convey("Then entry and exit both include the recess once", func() {
				So(out[0].Entry.Format("15:04"), ShouldEqual, "17:00")
				So(out[0].Exit.Format("15:04"), ShouldEqual, "18:30")
			})
		})

		Convey("When there are no windows", func() {
			out := schedule.Assemble(base, recess, nil)

			Convey("Then the result is empty but not nil", func() {
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When several windows are given", func() {
			out := schedule.Assemble(base, recess, []schedule.Window{
				{PersonID: "b", FirstBlock: 2, LastBlockExclusive: 3},
				{PersonID: "a", FirstBlock: 1, LastBlockExclusive: 2},
			})

			Convey("Then input order is preserved", func() {
				So(out[0].PersonID, ShouldEqual, "b")
				So(out[1].PersonID, ShouldEqual, "a")
			})
		})
	})
}

func TestRecessConfigNormalize(t *testing.T) {
	Convey("Given recess configs outside the block range", t, func() {
		Convey("Then they are clamped, never rejected", func() {
			So(schedule.RecessConfig{BlockBeforeRecess: 0, RecessMinutes: 15}.Normalize().BlockBeforeRecess, ShouldEqual, 1)
			So(schedule.RecessConfig{BlockBeforeRecess: 12, RecessMinutes: 15}.Normalize().BlockBeforeRecess, ShouldEqual, 7)
			So(schedule.RecessConfig{BlockBeforeRecess: 3, RecessMinutes: 10}.Normalize(), ShouldResemble, schedule.RecessConfig{BlockBeforeRecess: 3, RecessMinutes: 10})
		})
	})
}

func TestStoreWeekday(t *testing.T) {
	Convey("Given Go weekdays", t, func() {
		Convey("Then Sunday maps to 7 and the rest keep their number", func() {
			So(schedule.StoreWeekday(time.Sunday), ShouldEqual, 7)
			So(schedule.StoreWeekday(time.Monday), ShouldEqual, 1)
			So(schedule.StoreWeekday(time.Saturday), ShouldEqual, 6)
		})
	})
}

func TestParseClock(t *testing.T) {
	Convey("Given a target day", t, func() {
		day := time.Date(2025, time.May, 12, 8, 11, 0, 0, lima(t))
		want := time.Date(2025, time.May, 12, 7, 45, 0, 0, day.Location())

		Convey("When the value is a string", func() {
			got, err := schedule.ParseClock("07:45:00", day)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		})

		Convey("When the value is raw bytes without seconds", func() {
			got, err := schedule.ParseClock([]byte("07:45"), day)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		})

		Convey("When the value is a native time on another date", func() {
			got, err := schedule.ParseClock(time.Date(1970, time.January, 1, 7, 45, 59, 0, time.UTC), day)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		})

		Convey("When the value is missing", func() {
			got, err := schedule.ParseClock(nil, day)
			So(err, ShouldBeNil)
			So(got.Format("15:04:05"), ShouldEqual, schedule.DefaultStartClock)

			empty, err := schedule.ParseClock("  ", day)
			So(err, ShouldBeNil)
			So(empty, ShouldEqual, got)
		})

		Convey("When the value is malformed", func() {
			for _, v := range []any{"seven", "25:00", "07:61", "7", 42, "07:45:zz", "07:45:99", "+7:05", "-0:30", "07:-5"} {
				_, err := schedule.ParseClock(v, day)
				So(errors.Is(err, schedule.ErrMalformedTime), ShouldBeTrue)
			}
		})
	})
}
