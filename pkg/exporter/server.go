package exporter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/xfsops/prjquota/pkg/quota"
)

// NewRouter builds the exporter's HTTP surface: Prometheus metrics, a
// health endpoint and the read-only quota API.
func NewRouter(stores []*quota.Store, collector prometheus.Collector) *gin.Engine {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collector)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	registerAPI(router, stores)

	return router
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func Serve(ctx context.Context, handler http.Handler, addr string) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		<-ctx.Done()
		klog.Info("Shutting down exporter server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	klog.InfoS("Listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
