package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "scoreboard")
				So(manager.subsystem, ShouldEqual, "matches")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics carry the custom names and labels", func() {
				manager.matchesStarted.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				found := false
				for _, f := range families {
					if f.GetName() == "test_ns_test_sub_started_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithCustomLabels(nil),
				WithPrometheusRegistry(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "scoreboard")
				So(manager.subsystem, ShouldEqual, "matches")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording match lifecycle metrics", func() {
			started := testutil.ToFloat64(globalManager.matchesStarted)
			RecordMatchStarted()
			RecordScoreUpdate()
			RecordMatchFinished()
			UpdateOngoingMatches(7)

			Convey("Then the counters move", func() {
				So(testutil.ToFloat64(globalManager.matchesStarted), ShouldEqual, started+1)
				So(testutil.ToFloat64(globalManager.ongoingMatches), ShouldEqual, 7)
			})
		})

		Convey("When recording labelled metrics", func() {
			RecordRejected("update_score", "score_decreased")
			RecordStoreError("memory", "save")
			UpdateStoredMatches("memory", 3)

			Convey("Then each label set is tracked", func() {
				So(testutil.ToFloat64(globalManager.rejected.WithLabelValues("update_score", "score_decreased")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("memory", "save")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.storedMatches.WithLabelValues("memory")), ShouldEqual, 3)
			})
		})

		Convey("When recording latency and system metrics", func() {
			So(func() {
				RecordStoreLatency("memory", "get", 0.02)
				RecordHTTPRequest("matches", "GET", "200")
				RecordHTTPRequestDuration("matches", "GET", "200", 1.5)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("matches", "POST", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then it should succeed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent metric updates", t, func() {
		before := testutil.ToFloat64(globalManager.scoreUpdates)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				RecordScoreUpdate()
			}()
		}
		wg.Wait()

		So(testutil.ToFloat64(globalManager.scoreUpdates), ShouldEqual, before+100)
	})
}
