// Prometheus instrumentation for the bot side of the process; the HTTP layer
// carries its own request metrics. Labels are kept to small closed sets.
package bot

import "github.com/prometheus/client_golang/prometheus"

var (
	// updatesTotal counts consumed Telegram updates by kind.
	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of Telegram updates processed.",
		},
		[]string{"type"}, // message | callback
	)

	// thumbnailsSent counts delivered thumbnail photos.
	thumbnailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_thumbnails_sent_total",
			Help: "Total number of thumbnail photos delivered.",
		},
	)

	// ticketsOpened counts support tickets created through the bot.
	ticketsOpened = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_tickets_opened_total",
			Help: "Total number of support tickets opened.",
		},
	)

	// broadcastTotal counts broadcast deliveries by outcome.
	broadcastTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_broadcast_messages_total",
			Help: "Total number of broadcast messages by outcome.",
		},
		[]string{"result"}, // sent | failed
	)
)

func init() {
	prometheus.MustRegister(updatesTotal, thumbnailsSent, ticketsOpened, broadcastTotal)
}
