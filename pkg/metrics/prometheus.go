// Package metrics provides Prometheus metrics for the lineup engine.
package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Label values shared with callers.
const (
	OutcomeCompleted = "completed"
	OutcomeSkipped   = "skipped"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Reveal ceremony
	revealStarted        prometheus.Counter
	revealCompleted      *prometheus.CounterVec
	revealDuration       prometheus.Histogram
	revealCards          *prometheus.CounterVec
	revealIgnored        *prometheus.CounterVec
	revealTimersStarted  prometheus.Counter
	revealTimersCanceled prometheus.Counter
	revealTimersPending  prometheus.Gauge

	// Mailbox and executor
	mailboxEnqueued *prometheus.CounterVec
	mailboxDequeued *prometheus.CounterVec
	mailboxRejected *prometheus.CounterVec
	taskLatency     *prometheus.HistogramVec
	taskPanics      *prometheus.CounterVec

	// Team view
	viewAutoAssignments prometheus.Counter
	viewSlotsFilled     prometheus.Gauge
	viewSlotsOpen       prometheus.Gauge
	viewDrops           *prometheus.CounterVec
	viewRemoves         prometheus.Counter
	viewFilterChanges   prometheus.Counter
	viewTemplateSelects *prometheus.CounterVec
	viewLayoutFallbacks *prometheus.CounterVec
	catalogTemplates    prometheus.Gauge

	// Errors and runtime
	errorsByComponent    *prometheus.CounterVec
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lineup",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.revealStarted = auto.NewCounter(m.counterOpts("reveal_sessions_started_total",
		"Total number of reveal ceremonies started"))
	m.revealCompleted = auto.NewCounterVec(m.counterOpts("reveal_sessions_completed_total",
		"Total number of reveal ceremonies that reached completion"), []string{"outcome"})
	m.revealDuration = auto.NewHistogram(m.histogramOpts("reveal_session_duration_seconds",
		"Time from start to completion of a reveal ceremony"))
	m.revealCards = auto.NewCounterVec(m.counterOpts("reveal_cards_revealed_total",
		"Cards individually revealed, by ceremony category"), []string{"category"})
	m.revealIgnored = auto.NewCounterVec(m.counterOpts("reveal_actions_ignored_total",
		"Reveal actions rejected in the current phase"), []string{"action"})
	m.revealTimersStarted = auto.NewCounter(m.counterOpts("reveal_timers_scheduled_total",
		"Ceremony timers scheduled"))
	m.revealTimersCanceled = auto.NewCounter(m.counterOpts("reveal_timers_cancelled_total",
		"Ceremony timers cancelled before firing"))
	m.revealTimersPending = auto.NewGauge(m.gaugeOpts("reveal_timers_pending",
		"Ceremony timers currently outstanding"))

	m.mailboxEnqueued = auto.NewCounterVec(m.counterOpts("mailbox_enqueued_total",
		"Items accepted by a mailbox"), []string{"mailbox"})
	m.mailboxDequeued = auto.NewCounterVec(m.counterOpts("mailbox_dequeued_total",
		"Items handed to a mailbox consumer"), []string{"mailbox"})
	m.mailboxRejected = auto.NewCounterVec(m.counterOpts("mailbox_rejected_total",
		"Items a mailbox refused"), []string{"mailbox", "reason"})
	m.taskLatency = auto.NewHistogramVec(m.histogramOpts("task_latency_seconds",
		"Execution time of serial executor tasks"), []string{"executor"})
	m.taskPanics = auto.NewCounterVec(m.counterOpts("task_panics_total",
		"Executor tasks that panicked"), []string{"executor"})

	m.viewAutoAssignments = auto.NewCounter(m.counterOpts("view_auto_assignments_total",
		"Automatic slot assignments computed"))
	m.viewSlotsFilled = auto.NewGauge(m.gaugeOpts("view_slots_filled",
		"Slots filled by the most recent assignment"))
	m.viewSlotsOpen = auto.NewGauge(m.gaugeOpts("view_slots_open",
		"Slots left open by the most recent assignment"))
	m.viewDrops = auto.NewCounterVec(m.counterOpts("view_drops_total",
		"Drag and drop assignments by outcome"), []string{"outcome"})
	m.viewRemoves = auto.NewCounter(m.counterOpts("view_removes_total",
		"Members removed from a slot"))
	m.viewFilterChanges = auto.NewCounter(m.counterOpts("view_filter_changes_total",
		"Roster filter changes"))
	m.viewTemplateSelects = auto.NewCounterVec(m.counterOpts("view_template_selects_total",
		"Template selections by result"), []string{"result"})
	m.viewLayoutFallbacks = auto.NewCounterVec(m.counterOpts("view_layout_fallbacks_total",
		"Layouts resolved without a sport specific template"), []string{"kind"})
	m.catalogTemplates = auto.NewGauge(m.gaugeOpts("catalog_templates",
		"Templates in the loaded layout catalog"))

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_total",
		"Errors by component and type"), []string{"component", "error_type"})
	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes",
		"Heap memory in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines",
		"Number of live goroutines"))
}

// active returns the global manager, or nil when collection is disabled.
func active() *Manager {
	if globalManager == nil || !globalManager.enabled {
		return nil
	}
	return globalManager
}

// Reveal ceremony.

// RecordRevealStarted counts a ceremony leaving intro.
func RecordRevealStarted() {
	if m := active(); m != nil {
		m.revealStarted.Inc()
	}
}

// RecordRevealCompleted counts a completed ceremony and its duration.
func RecordRevealCompleted(skipped bool, seconds float64) {
	m := active()
	if m == nil {
		return
	}
	outcome := OutcomeCompleted
	if skipped {
		outcome = OutcomeSkipped
	}
	m.revealCompleted.WithLabelValues(outcome).Inc()
	m.revealDuration.Observe(seconds)
}

// RecordCardRevealed counts one card revealed individually.
func RecordCardRevealed(category string) {
	if m := active(); m != nil {
		m.revealCards.WithLabelValues(category).Inc()
	}
}

// RecordRevealActionIgnored counts an action the machine refused.
func RecordRevealActionIgnored(action string) {
	if m := active(); m != nil {
		m.revealIgnored.WithLabelValues(action).Inc()
	}
}

// RecordTimerScheduled counts a scheduled ceremony timer.
func RecordTimerScheduled() {
	if m := active(); m != nil {
		m.revealTimersStarted.Inc()
	}
}

// RecordTimerCancelled counts a timer cancelled before it fired.
func RecordTimerCancelled() {
	if m := active(); m != nil {
		m.revealTimersCanceled.Inc()
	}
}

// AddPendingTimers moves the outstanding timer gauge by delta.
func AddPendingTimers(delta int) {
	if m := active(); m != nil {
		m.revealTimersPending.Add(float64(delta))
	}
}

// Mailbox and executor.

// RecordMailboxEnqueue counts an accepted mailbox item.
func RecordMailboxEnqueue(mailbox string) {
	if m := active(); m != nil {
		m.mailboxEnqueued.WithLabelValues(mailbox).Inc()
	}
}

// RecordMailboxDequeue counts an item handed to the consumer.
func RecordMailboxDequeue(mailbox string) {
	if m := active(); m != nil {
		m.mailboxDequeued.WithLabelValues(mailbox).Inc()
	}
}

// RecordMailboxRejected counts a refused item.
func RecordMailboxRejected(mailbox, reason string) {
	if m := active(); m != nil {
		m.mailboxRejected.WithLabelValues(mailbox, reason).Inc()
	}
}

// RecordTaskLatency observes a task execution time in seconds.
func RecordTaskLatency(executor string, seconds float64) {
	if m := active(); m != nil {
		m.taskLatency.WithLabelValues(executor).Observe(seconds)
	}
}

// RecordTaskPanic counts a recovered task panic.
func RecordTaskPanic(executor string) {
	if m := active(); m != nil {
		m.taskPanics.WithLabelValues(executor).Inc()
	}
}

// Team view.

// RecordAutoAssignment counts an automatic assignment and records its fill.
func RecordAutoAssignment(filled, open int) {
	m := active()
	if m == nil {
		return
	}
	m.viewAutoAssignments.Inc()
	m.viewSlotsFilled.Set(float64(filled))
	m.viewSlotsOpen.Set(float64(open))
}

// RecordDrop counts a drop by outcome.
func RecordDrop(outcome string) {
	if m := active(); m != nil {
		m.viewDrops.WithLabelValues(outcome).Inc()
	}
}

// RecordRemove counts a slot cleared by the user.
func RecordRemove() {
	if m := active(); m != nil {
		m.viewRemoves.Inc()
	}
}

// RecordFilterChange counts a filter change.
func RecordFilterChange() {
	if m := active(); m != nil {
		m.viewFilterChanges.Inc()
	}
}

// RecordTemplateSelect counts a template selection by result.
func RecordTemplateSelect(result string) {
	if m := active(); m != nil {
		m.viewTemplateSelects.WithLabelValues(result).Inc()
	}
}

// RecordLayoutFallback counts a layout resolved by fallback.
func RecordLayoutFallback(kind string) {
	if m := active(); m != nil {
		m.viewLayoutFallbacks.WithLabelValues(kind).Inc()
	}
}

// UpdateCatalogTemplates sets the loaded template count.
func UpdateCatalogTemplates(count int) {
	if m := active(); m != nil {
		m.catalogTemplates.Set(float64(count))
	}
}

// Errors and runtime.

// RecordErrorByComponent records errors by component.
func RecordErrorByComponent(component, errorType string) {
	if m := active(); m != nil {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage updates the heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if m := active(); m != nil {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if m := active(); m != nil {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// CollectRuntime samples runtime gauges every refresh interval until ctx
// is cancelled.
func CollectRuntime(ctx context.Context) {
	interval := defaultRefreshInterval
	if globalManager != nil {
		interval = globalManager.refreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sample := func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		UpdateSystemMemoryUsage(ms.HeapAlloc)
		UpdateSystemGoroutineCount(runtime.NumGoroutine())
	}
	sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample()
		}
	}
}

// Configure replaces the global manager, registering on a fresh registry.
// Call it once at startup before any metric is recorded.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	opts = append(opts, WithPrometheusRegistry(customRegistry))
	globalManager = NewManager(opts...)
}

// GetRegistry returns the custom registry for use in HTTP handlers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
