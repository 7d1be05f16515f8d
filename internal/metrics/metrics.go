// metrics — счётчики Prometheus для HTTP и доменных событий.
// Все методы безопасны на nil-получателе: метрики опциональны для сервиса и тестов.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "review_comments"

// Результаты постановки уведомления.
const (
	NotifyOK      = "ok"
	NotifyFailed  = "failed"
	NotifySkipped = "skipped"
)

type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	created       *prometheus.CounterVec
	toggled       *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New создаёт и регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Comments created by visibility class.",
		}, []string{"tipo"}),
		toggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_state_toggled_total",
			Help:      "State toggles by resulting state.",
		}, []string{"estado"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_enqueued_total",
			Help:      "Notification dispatch attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.created, m.toggled, m.notifications)

	return m
}

// ObserveHTTP учитывает завершённый запрос. route — шаблон chi, а не сырой путь.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) CommentCreated(tipo string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(tipo).Inc()
}

func (m *Metrics) StateToggled(estado string) {
	if m == nil {
		return
	}
	m.toggled.WithLabelValues(estado).Inc()
}

func (m *Metrics) NotificationEnqueued(result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
}
