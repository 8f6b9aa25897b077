package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace          = "lang_bot"
	metricsSubSystemLangTools = "langtools"
	metricsSubSystemWorker    = "worker"
)

// 翻译来源
const (
	SourceAuto   = "auto"
	SourceManual = "manual"
)

// Metrics 语言工具的 Prometheus 指标；nil 接收者上的方法均为空操作
type Metrics struct {
	registry *prometheus.Registry

	actions          *prometheus.CounterVec
	translations     *prometheus.CounterVec
	translateSeconds prometheus.Histogram
	persistErrors    prometheus.Counter
}

// New 创建独立 registry 并注册全部指标
func New() *Metrics {
	var m Metrics
	m.registry = prometheus.NewRegistry()

	m.actions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubSystemLangTools,
		Name:      "actions_total",
		Help:      "Automatic dispatch decisions by action kind.",
	},
		[]string{"kind"})
	m.registry.MustRegister(m.actions)

	m.translations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubSystemLangTools,
		Name:      "translations_total",
		Help:      "Translation API calls by source and outcome.",
	},
		[]string{"source", "status"})
	m.registry.MustRegister(m.translations)

	m.translateSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubSystemLangTools,
		Name:      "translate_duration_seconds",
		Help:      "Time spent waiting for the translation API.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	})
	m.registry.MustRegister(m.translateSeconds)

	m.persistErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubSystemLangTools,
		Name:      "persist_errors_total",
		Help:      "Settings mutations that could not be persisted.",
	})
	m.registry.MustRegister(m.persistErrors)

	return &m
}

// ObserveAction 记录一次自动调度结果
func (m *Metrics) ObserveAction(kind string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind).Inc()
}

// ObserveTranslation 记录一次翻译调用
func (m *Metrics) ObserveTranslation(source, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.translations.WithLabelValues(source, status).Inc()
	m.translateSeconds.Observe(elapsed.Seconds())
}

// ObservePersistError 记录一次持久化失败
func (m *Metrics) ObservePersistError() {
	if m == nil {
		return
	}
	m.persistErrors.Inc()
}

// RegisterQueueDepth 注册工作池队列长度
func (m *Metrics) RegisterQueueDepth(fn func() int) {
	if m == nil || fn == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubSystemWorker,
		Name:      "queue_depth",
		Help:      "Updates waiting in the worker pool queue.",
	}, func() float64 { return float64(fn()) }))
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
