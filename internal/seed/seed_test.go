package seed_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/asistencia/internal/adapters/repository"
	service "github.com/okian/asistencia/internal/app"
	"github.com/okian/asistencia/internal/seed"
)

func TestRun(t *testing.T) {
	Convey("Given an empty SQLite store", t, func() {
		ctx := context.Background()
		store, err := repository.Open(ctx, repository.DriverSQLite, filepath.Join(t.TempDir(), "seed.db"))
		So(err, ShouldBeNil)
		defer func() { _ = store.Close() }()

		pet := time.FixedZone("PET", -5*60*60)
		today := time.Date(2025, time.June, 4, 0, 0, 0, 0, pet) // Wednesday
		cfg := seed.Config{
			SecondaryTeachers:   12,
			PrimaryTeachers:     5,
			Assistants:          3,
			AdministrativeStaff: 2,
			Today:               today,
		}

		Convey("When seeding with every person active", func() {
			stats, err := seed.Run(ctx, store, cfg, nil)

			Convey("Then the stats describe the dataset", func() {
				So(err, ShouldBeNil)
				So(stats.SecondaryTeachers, ShouldEqual, 12)
				So(stats.Inactive, ShouldEqual, 0)
				So(stats.Duration >= 0, ShouldBeTrue)
			})

			Convey("And a snapshot can be built from it", func() {
				snap, err := service.NewBuilder(store,
					service.WithLocation(pet),
					service.WithDate(today)).Build(ctx)

				So(err, ShouldBeNil)
				So(snap.OutsideSchoolYear, ShouldBeFalse)
				So(snap.InsideMidYearVacation, ShouldBeFalse)
				So(snap.EventDay, ShouldBeFalse)
				So(snap.Announcements, ShouldHaveLength, 1)
				So(snap.Assistants, ShouldHaveLength, 3)
				So(snap.PrimaryTeachers, ShouldHaveLength, 5)
				So(snap.AdministrativeStaff, ShouldHaveLength, 2)
				So(snap.SchoolTimetables, ShouldHaveLength, 2)
				So(len(snap.SecondaryTeachers), ShouldBeLessThanOrEqualTo, 12)

				first := time.Date(2025, time.June, 4, 13, 0, 0, 0, pet)
				last := time.Date(2025, time.June, 4, 18, 30, 0, 0, pet)
				for _, teacher := range snap.SecondaryTeachers {
					So(teacher.EntryTime.Before(first), ShouldBeFalse)
					So(teacher.ExitTime.After(last), ShouldBeFalse)
					So(teacher.ExitTime.After(teacher.EntryTime), ShouldBeTrue)
				}
			})

			Convey("And seeding the same store twice fails", func() {
				_, err := seed.Run(ctx, store, cfg, nil)
				So(errors.Is(err, repository.ErrQuery), ShouldBeTrue)
			})
		})

		Convey("When everybody is inactive", func() {
			cfg.InactiveRatio = 1
			stats, err := seed.Run(ctx, store, cfg, nil)
			So(err, ShouldBeNil)
			So(stats.Inactive, ShouldEqual, 12+5+3+2)

			snap, err := service.NewBuilder(store, service.WithLocation(pet), service.WithDate(today)).Build(ctx)
			So(err, ShouldBeNil)
			So(snap.SecondaryTeachers, ShouldBeEmpty)
			So(snap.Assistants, ShouldBeEmpty)
		})

		Convey("When the config is out of range", func() {
			cfg.InactiveRatio = 1.5
			_, err := seed.Run(ctx, store, cfg, nil)
			So(errors.Is(err, seed.ErrInvalidConfig), ShouldBeTrue)

			cfg.InactiveRatio = 0
			cfg.Assistants = -1
			_, err = seed.Run(ctx, store, cfg, nil)
			So(errors.Is(err, seed.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
