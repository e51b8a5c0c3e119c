// Package metrics содержит prometheus-коллекторы сервиса.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов сервиса. Имя сервиса зашивается в label "service",
// чтобы дашборды могли объединять несколько инстансов.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnsOpen     *prometheus.GaugeVec
	dbConnsInUse    *prometheus.GaugeVec
	dbConnsIdle     *prometheus.GaugeVec

	bookingsCreatedTotal   *prometheus.CounterVec
	bookingConflictsTotal  *prometheus.CounterVec
	bookingsCancelledTotal *prometheus.CounterVec
	remindersSentTotal     *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в дефолтном регистре
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		}, []string{"service"}),

		dbConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		dbConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		bookingsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of bookings created",
		}, []string{"service"}),

		bookingConflictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Total number of booking requests rejected with a conflict",
		}, []string{"service", "conflict_type"}),

		bookingsCancelledTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total number of bookings cancelled",
		}, []string{"service"}),

		remindersSentTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminder deliveries by channel and status",
		}, []string{"service", "channel", "status"}),
	}
}

// ObserveHTTPRequest учитывает обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает длительность SQL-запроса
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauges состояния connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbConnsOpen.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbConnsInUse.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbConnsIdle.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
}

// IncBookingCreated учитывает успешно созданное бронирование
func (m *Metrics) IncBookingCreated() {
	m.bookingsCreatedTotal.WithLabelValues(m.serviceName).Inc()
}

// IncBookingConflict учитывает отклоненное бронирование по типу конфликта
func (m *Metrics) IncBookingConflict(conflictType string) {
	m.bookingConflictsTotal.WithLabelValues(m.serviceName, conflictType).Inc()
}

// IncBookingCancelled учитывает отмену бронирования
func (m *Metrics) IncBookingCancelled() {
	m.bookingsCancelledTotal.WithLabelValues(m.serviceName).Inc()
}

// IncReminderSent учитывает отправку напоминания
func (m *Metrics) IncReminderSent(channel, status string) {
	m.remindersSentTotal.WithLabelValues(m.serviceName, channel, status).Inc()
}
