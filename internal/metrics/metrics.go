// Package metrics 提供 Prometheus 指标的收集与暴露。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 结果标签
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultEmpty = "empty"
	ResultCache = "cache"
)

// Recorder 服务层使用的指标接口
type Recorder interface {
	RecordCatalog(op, result string)
	RecordWatchlist(op, result string)
}

// Collector Prometheus 实现
type Collector struct {
	catalog   *prometheus.CounterVec
	watchlist *prometheus.CounterVec
	gatherer  prometheus.Gatherer
}

// NewCollector 创建 Collector 并注册到指定注册表
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		catalog: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "watchbox_catalog_requests_total",
			Help: "影片目录请求次数",
		}, []string{"op", "result"}),
		watchlist: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "watchbox_watchlist_ops_total",
			Help: "待看清单操作次数",
		}, []string{"op", "result"}),
		gatherer: reg,
	}
	reg.MustRegister(c.catalog, c.watchlist)
	return c
}

// RecordCatalog 记录目录请求
func (c *Collector) RecordCatalog(op, result string) {
	c.catalog.WithLabelValues(op, result).Inc()
}

// RecordWatchlist 记录待看清单操作
func (c *Collector) RecordWatchlist(op, result string) {
	c.watchlist.WithLabelValues(op, result).Inc()
}

// Handler 暴露 /metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Nop 不记录任何指标
type Nop struct{}

func (Nop) RecordCatalog(string, string)   {}
func (Nop) RecordWatchlist(string, string) {}
