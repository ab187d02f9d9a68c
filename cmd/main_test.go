package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/ktready/internal/config"
	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/pkg/logger"
	"github.com/okian/ktready/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("KTREADY_ADDR", ":8081")
			_ = os.Setenv("KTREADY_PROGRESS_POLICY", "truncate")
			defer func() {
				_ = os.Unsetenv("KTREADY_ADDR")
				_ = os.Unsetenv("KTREADY_PROGRESS_POLICY")
			}()

			convey.Convey("Then configuration should reflect the overrides", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.Policy(), convey.ShouldEqual, readiness.Truncate)
			})
		})

		convey.Convey("When building the service from defaults", func() {
			svc := newService(config.New(), logger.Get())
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the mux serves the API and the docs", func() {
				mux := newMux(context.Background(), svc)
				for _, path := range []string{"/teams", "/records", "/summary", "/markers", "/openapi.yaml", "/api-docs", "/metrics"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})

		convey.Convey("When the dataset file is malformed", func() {
			path := filepath.Join(t.TempDir(), "broken.yaml")
			data := "tasks: [A, B]\ncountries:\n  USA: [37.1, -95.7]\nteams:\n  AP:\n    USA: [1]\n"
			convey.So(os.WriteFile(path, []byte(data), 0o600), convey.ShouldBeNil)

			cfg := config.New()
			cfg.DatasetPath = path

			convey.Convey("Then the service refuses to start with a configuration error", func() {
				err := newService(cfg, logger.Get()).Start(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(readiness.IsConfiguration(err), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When creating a metrics manager on a private registry", func() {
			convey.Convey("Then it should not collide with the global one", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When the listen address is blank", func() {
			_ = os.Setenv("KTREADY_ADDR", "")
			defer func() { _ = os.Unsetenv("KTREADY_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the progress policy is unknown", func() {
			_ = os.Setenv("KTREADY_PROGRESS_POLICY", "ceil")
			defer func() { _ = os.Unsetenv("KTREADY_PROGRESS_POLICY") }()

			convey.Convey("Then run exits with the configuration code", func() {
				convey.So(run(), convey.ShouldEqual, exitConfiguration)
			})
		})
	})
}
