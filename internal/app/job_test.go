package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/asistencia/internal/app"
	"github.com/okian/asistencia/internal/adapters/blob"
	"github.com/okian/asistencia/internal/domain/model"
)

type recordingPublisher struct {
	published []*model.DailySnapshot
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, snap *model.DailySnapshot) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, snap)
	return nil
}

func TestJob_Run(t *testing.T) {
	Convey("Given a job over a fake source", t, func() {
		ctx := context.Background()
		src := newFakeSource()
		now := time.Date(2025, time.June, 5, 13, 0, 0, 0, time.UTC)
		builder := service.NewBuilder(src, service.WithClock(fixedClock(now)), service.WithLocation(pet))
		pub := &recordingPublisher{}

		Convey("When the run succeeds", func() {
			var printed bytes.Buffer
			job := service.NewJob(builder, pub, service.WithPrinter(blob.NewStdoutPublisher(&printed)))

			err := job.Run(ctx)

			Convey("Then the snapshot is published once and printed", func() {
				So(err, ShouldBeNil)
				So(pub.published, ShouldHaveLength, 1)
				So(pub.published[0].SecondaryTeachers, ShouldHaveLength, 2)
				So(printed.String(), ShouldContainSubstring, "ListaDeProfesoresSecundaria")
			})
		})

		Convey("When a fetch fails", func() {
			src.failOn = "calendar"
			src.err = errors.New("relation does not exist")
			job := service.NewJob(builder, pub)

			err := job.Run(ctx)

			Convey("Then nothing is published and the error surfaces", func() {
				So(errors.Is(err, service.ErrBuild), ShouldBeTrue)
				So(pub.published, ShouldBeEmpty)
			})
		})

		Convey("When publishing fails", func() {
			pub.err = blob.ErrPublish
			job := service.NewJob(builder, pub)

			err := job.Run(ctx)

			Convey("Then the run fails", func() {
				So(errors.Is(err, blob.ErrPublish), ShouldBeTrue)
			})
		})

		Convey("When no publisher is configured", func() {
			err := service.NewJob(builder, nil).Run(ctx)

			Convey("Then the run fails", func() {
				So(errors.Is(err, service.ErrNoPublish), ShouldBeTrue)
			})
		})

		Convey("When a pushgateway is configured", func() {
			var pushes atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				pushes.Add(1)
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			job := service.NewJob(builder, pub,
				service.WithPushgateway(srv.URL, "asistencia_test"),
				service.WithGatherer(prometheus.NewRegistry()))

			err := job.Run(ctx)

			Convey("Then metrics are pushed after the run", func() {
				So(err, ShouldBeNil)
				So(pushes.Load(), ShouldEqual, int32(1))
			})
		})

		Convey("When the pushgateway is down", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer srv.Close()

			job := service.NewJob(builder, pub, service.WithPushgateway(srv.URL, "asistencia_test"))

			err := job.Run(ctx)

			Convey("Then the run still succeeds", func() {
				So(err, ShouldBeNil)
				So(pub.published, ShouldHaveLength, 1)
			})
		})
	})
}
