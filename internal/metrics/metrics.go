package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flowershop"

type Metrics struct {
	updates       *prometheus.CounterVec
	outboundErrs  *prometheus.CounterVec
	broadcastMsgs *prometheus.CounterVec
}

// New регистрирует метрики бота. pendingLen отдаёт текущий размер реестра ожиданий.
func New(reg prometheus.Registerer, pendingLen func() int) (*Metrics, error) {
	m := &Metrics{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_updates_total",
			Help:      "Обработанные обновления вебхука по маршрутам.",
		}, []string{"route"}),
		outboundErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbound_errors_total",
			Help:      "Ошибки исходящих вызовов Telegram Bot API по методам.",
		}, []string{"method"}),
		broadcastMsgs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_messages_total",
			Help:      "Сообщения рассылок по результату доставки.",
		}, []string{"result"}),
	}

	pending := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_interactions",
		Help:      "Записи в реестре ожидаемых действий.",
	}, func() float64 {
		return float64(pendingLen())
	})

	for _, c := range []prometheus.Collector{m.updates, m.outboundErrs, m.broadcastMsgs, pending} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// InitRoutes заводит нулевые серии для известных маршрутов
func (m *Metrics) InitRoutes(routes []string) {
	for _, route := range routes {
		m.updates.WithLabelValues(route)
	}
}

func (m *Metrics) ObserveRoute(route string) {
	m.updates.WithLabelValues(route).Inc()
}

func (m *Metrics) OutboundError(method string) {
	m.outboundErrs.WithLabelValues(method).Inc()
}

func (m *Metrics) BroadcastOutcome(outcome string) {
	m.broadcastMsgs.WithLabelValues(outcome).Inc()
}
