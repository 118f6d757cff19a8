package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsModule serves the Prometheus registry at GET /metrics.
type MetricsModule struct {
	Registry *prometheus.Registry
}

func NewMetricsModule(reg *prometheus.Registry) *MetricsModule { return &MetricsModule{Registry: reg} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
}
