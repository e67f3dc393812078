package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "halloffame")
				So(manager.subsystem, ShouldEqual, "roster")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("hof"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "hof")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When empty option values are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "halloffame")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When the roster size is set", func() {
			manager.SetRosterSize(12, 4)

			Convey("Then both gauges should hold the values", func() {
				So(testutil.ToFloat64(manager.studentsTotal), ShouldEqual, 12)
				So(testutil.ToFloat64(manager.teamsTotal), ShouldEqual, 4)
			})
		})

		Convey("When roster changes are recorded", func() {
			manager.RecordStudentsAdded(3)
			manager.RecordStudentUpdated()
			manager.RecordStudentsDeleted(2)
			manager.RecordDuplicateRejected()

			Convey("Then the counters should move", func() {
				So(testutil.ToFloat64(manager.studentsAdded), ShouldEqual, 3)
				So(testutil.ToFloat64(manager.studentsUpdated), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.studentsDeleted), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.duplicateRejected), ShouldEqual, 1)
			})
		})

		Convey("When import rows are recorded", func() {
			So(manager.RecordImportRows(OutcomeAdded, 5), ShouldBeNil)
			So(manager.RecordImportRows(OutcomeSkipped, 2), ShouldBeNil)
			So(manager.RecordImportRows(OutcomeFailed, 0), ShouldBeNil)

			Convey("Then each outcome should be counted", func() {
				So(testutil.ToFloat64(manager.importRows.WithLabelValues(OutcomeAdded)), ShouldEqual, 5)
				So(testutil.ToFloat64(manager.importRows.WithLabelValues(OutcomeSkipped)), ShouldEqual, 2)
			})

			Convey("And an unknown outcome should be rejected", func() {
				err := manager.RecordImportRows("bogus", 1)
				So(errors.Is(err, ErrUnknownOutcome), ShouldBeTrue)
			})
		})

		Convey("When store calls and failures are recorded", func() {
			manager.RecordStoreOp("list", 1.5, nil)
			manager.RecordStoreOp("insert", 2.5, errors.New("boom"))
			manager.RecordAuthFailure("invalid_token")

			Convey("Then only failures should count as errors", func() {
				So(testutil.ToFloat64(manager.storeErrors.WithLabelValues("insert")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.storeErrors.WithLabelValues("list")), ShouldEqual, 0)
				So(testutil.ToFloat64(manager.authFailures.WithLabelValues("invalid_token")), ShouldEqual, 1)
			})
		})

		Convey("When HTTP requests are recorded", func() {
			manager.RecordHTTPRequest("students", "GET", "200", 3)
			manager.RecordHTTPRequest("students", "GET", "200", 4)

			Convey("Then the request counter should be incremented", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("students", "GET", "200")), ShouldEqual, 2)
			})
		})

		Convey("When a view is recorded against an empty roster", func() {
			So(func() { manager.RecordRosterView(0, 0) }, ShouldNotPanic)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When package helpers are called", func() {
			So(func() {
				SetRosterSize(1, 1)
				RecordStudentsAdded(1)
				RecordStudentUpdated()
				RecordStudentsDeleted(1)
				RecordDuplicateRejected()
				RecordRosterView(1, 2)
				RecordAuthFailure("missing_token")
				RecordStoreOp("count", 0.2, nil)
				RecordHTTPRequest("healthz", "GET", "200", 0.1)
			}, ShouldNotPanic)
			So(RecordImportRows(OutcomeDuplicate, 1), ShouldBeNil)

			Convey("Then the registry should expose the metrics", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
