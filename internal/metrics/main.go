package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals //registered once with the default registry
var (
	OccurrencesExpanded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dzisiaj_occurrences_expanded_total",
		Help: "Number of event occurrences produced by recurrence expansion",
	})

	EventsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dzisiaj_events_skipped_total",
		Help: "Number of malformed events skipped during expansion",
	})

	ICSImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dzisiaj_ics_imported_total",
		Help: "Number of VEVENTs processed by the .ics importer",
	}, []string{"result"})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dzisiaj_reminders_sent_total",
		Help: "Number of reminders pushed to connected clients",
	})
)
