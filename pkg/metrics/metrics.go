package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "session_tracker"

// Registry 应用独立的 Prometheus 注册表，不使用全局 DefaultRegisterer
var Registry = prometheus.NewRegistry()

var (
	// HTTPRequests 按路由模板、方法、状态码统计请求数
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, partitioned by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPLatency 请求耗时分布
	HTTPLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ReminderSweeps 作业提醒扫描次数，按结果区分
	ReminderSweeps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reminder",
		Name:      "sweeps_total",
		Help:      "Homework reminder sweeps, partitioned by outcome.",
	}, []string{"outcome"})

	// RemindersCreated 扫描新建的提醒通知数
	RemindersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reminder",
		Name:      "notifications_created_total",
		Help:      "Notifications created by homework reminder sweeps.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPLatency,
		ReminderSweeps,
		RemindersCreated,
	)
}

// Handler 暴露 /metrics 抓取端点
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
