package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	BookingsCreatedTotal   prometheus.Counter
	BookingsCancelledTotal prometheus.Counter
	RemindersFiredTotal    prometheus.Counter
	SweeperFlipsTotal      *prometheus.CounterVec
	PrayerFetchTotal       *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		DBOpenConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings committed",
			ConstLabels: constLabels,
		}),

		BookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled",
			ConstLabels: constLabels,
		}),

		RemindersFiredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminders_fired_total",
			Help:        "Total number of reminder jobs fired",
			ConstLabels: constLabels,
		}),

		SweeperFlipsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "therapist_sweeper_flips_total",
			Help:        "Total number of therapist activation state flips by the sweeper",
			ConstLabels: constLabels,
		}, []string{"direction"}),

		PrayerFetchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "prayer_timetable_fetch_total",
			Help:        "Total number of prayer timetable provider fetches",
			ConstLabels: constLabels,
		}, []string{"status"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(operation, status string, seconds float64) {
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated() {
	m.BookingsCreatedTotal.Inc()
}

// IncBookingCancelled увеличивает счетчик отмененных бронирований
func (m *Metrics) IncBookingCancelled() {
	m.BookingsCancelledTotal.Inc()
}

// IncReminderFired увеличивает счетчик сработавших напоминаний
func (m *Metrics) IncReminderFired() {
	m.RemindersFiredTotal.Inc()
}

// IncSweeperFlip увеличивает счетчик переключений активности терапевтов
func (m *Metrics) IncSweeperFlip(direction string) {
	m.SweeperFlipsTotal.WithLabelValues(direction).Inc()
}

// IncPrayerFetch увеличивает счетчик запросов к провайдеру расписаний молитв
func (m *Metrics) IncPrayerFetch(status string) {
	m.PrayerFetchTotal.WithLabelValues(status).Inc()
}

// Noop пустой регистратор бизнес-метрик
// Используется, когда сбор метрик выключен в конфигурации
type Noop struct{}

func (Noop) IncBookingCreated()              {}
func (Noop) IncBookingCancelled()            {}
func (Noop) IncReminderFired()               {}
func (Noop) IncSweeperFlip(direction string) {}
func (Noop) IncPrayerFetch(status string)    {}

// SetDBPoolStats записывает состояние connection pool
func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int) {
	m.DBOpenConnections.WithLabelValues(db).Set(float64(open))
	m.DBInUseConnections.WithLabelValues(db).Set(float64(inUse))
	m.DBIdleConnections.WithLabelValues(db).Set(float64(idle))
}
