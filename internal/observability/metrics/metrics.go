package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics instruments inbound HTTP traffic.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers HTTP instruments on the given registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stagehub_http_requests_total",
			Help: "Completed HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stagehub_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// GinMiddleware records request counts and latencies.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Metrics exposes application-level instruments.
type Metrics struct {
	ordersCreated       *prometheus.CounterVec
	ticketsIssued       prometheus.Counter
	discountRedemptions *prometheus.CounterVec
	checkoutConflicts   prometheus.Counter
	emailsSent          *prometheus.CounterVec
}

// New registers domain instruments on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stagehub_orders_created_total",
			Help: "Orders created by type.",
		}, []string{"type"}),
		ticketsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stagehub_tickets_issued_total",
			Help: "Event tickets issued.",
		}),
		discountRedemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stagehub_discount_redemptions_total",
			Help: "Discount code redemption attempts by result.",
		}, []string{"result"}),
		checkoutConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stagehub_checkout_conflicts_total",
			Help: "Checkouts rejected due to stock or discount contention.",
		}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stagehub_emails_sent_total",
			Help: "Outbound emails by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.ordersCreated, m.ticketsIssued, m.discountRedemptions, m.checkoutConflicts, m.emailsSent)
	return m
}

func (m *Metrics) RecordOrderCreated(orderType string) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(strings.ToUpper(strings.TrimSpace(orderType))).Inc()
}

func (m *Metrics) RecordTicketIssued() {
	if m == nil {
		return
	}
	m.ticketsIssued.Inc()
}

func (m *Metrics) RecordDiscountRedemption(result string) {
	if m == nil {
		return
	}
	m.discountRedemptions.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordCheckoutConflict() {
	if m == nil {
		return
	}
	m.checkoutConflicts.Inc()
}

func (m *Metrics) RecordEmailSent(result string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(result).Inc()
}
