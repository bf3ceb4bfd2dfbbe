package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the package-level recording helpers", t, func() {
		Convey("When recording submission metrics", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					RecordSubmissionAccepted()
					RecordSubmissionRejected("missing_field")
					RecordSubmissionRejected("unknown_location")
					UpdateSubmissionsTotal(12)
					UpdateDistinctParticipants(4)
					UpdateHilledLocations(7)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording store and snapshot metrics", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					RecordStoreAppendLatency(1.5)
					RecordStoreScanLatency(3.2)
					RecordStoreFailure()
					RecordSnapshotRebuildDuration(4.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					RecordHTTPRequest("submissions", "POST", "201")
					RecordHTTPRequestDuration("submissions", "POST", "201", 2.5)
					RecordErrorByComponent("store", "append_failed")
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("submissions", "POST", "client_error")
					RecordErrorLatency("http", "client_error", 1.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(10)
					RecordSystemGCPauseTime(0.25)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should return the custom registry", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
