// Package metrics предоставляет Prometheus-метрики сервиса.
// Метрики регистрируются в собственном реестре, чтобы /metrics
// отдавал только то, что относится к табло, без стандартных Go-метрик.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scoreboard"

// Результаты попыток входа для метки result.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginLocked  = "locked"
)

var registry = prometheus.NewRegistry() //nolint:gochecknoglobals // реестр процесса

var (
	dailyCreated = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_created_total",
		Help:      "Ежедневных задач создано этим экземпляром",
	})

	dailyRaceLost = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_race_lost_total",
		Help:      "Гонок за создание ежедневной задачи проиграно (сгенерированная головоломка выброшена)",
	})

	scoresSubmitted = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scores_submitted_total",
		Help:      "Принятых результатов",
	}, []string{"daily"})

	logins = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Попыток входа по результату",
	}, []string{"result"})

	httpDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Длительность HTTP-запросов",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

// DailyCreated отмечает, что этот экземпляр вставил новую ежедневную задачу.
func DailyCreated() { dailyCreated.Inc() }

// DailyRaceLost отмечает проигранную гонку за вставку ежедневной задачи.
func DailyRaceLost() { dailyRaceLost.Inc() }

// ScoreSubmitted отмечает принятый результат.
func ScoreSubmitted(daily bool) {
	scoresSubmitted.WithLabelValues(strconv.FormatBool(daily)).Inc()
}

// Login отмечает попытку входа.
func Login(result string) { logins.WithLabelValues(result).Inc() }

// ObserveHTTP записывает длительность обработанного запроса.
func ObserveHTTP(route, method string, status int, d time.Duration) {
	httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler отдаёт метрики в формате Prometheus.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
