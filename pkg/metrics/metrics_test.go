package metrics

import (
	"testing"

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

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
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
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording roster metrics", func() {
			Convey("Then it should record sign-ups", func() {
				So(func() {
					RecordSignup()
					RecordSignup()
				}, ShouldNotPanic)
			})

			Convey("And it should record unregistrations", func() {
				So(func() {
					RecordUnregister()
				}, ShouldNotPanic)
			})

			Convey("And it should record rejections", func() {
				So(func() {
					RecordRosterRejection("signup", "already_signed_up")
					RecordRosterRejection("unregister", "not_signed_up")
					RecordRosterRejection("signup", "activity_not_found")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording operational metrics", func() {
			Convey("Then it should update gauges", func() {
				So(func() {
					UpdateTotalActivities(9)
					UpdateTotalParticipants(18)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record requests", func() {
				So(func() {
					RecordHTTPRequest("activities", "GET", "200")
					RecordHTTPRequest("signup", "POST", "404")
				}, ShouldNotPanic)
			})

			Convey("And it should record durations", func() {
				So(func() {
					RecordHTTPRequestDuration("activities", "GET", "200", 5.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record errors", func() {
				So(func() {
					RecordErrorByEndpoint("signup", "POST", "not_found")
					RecordErrorByType("client_error", "medium")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.25)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the metrics registry", t, func() {
		Convey("When getting the custom registry", func() {
			registry := GetRegistry()

			Convey("Then it should not be nil", func() {
				So(registry, ShouldNotBeNil)
			})

			Convey("And gathering should succeed", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})
	})
}
