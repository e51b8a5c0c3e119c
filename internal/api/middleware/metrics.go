package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// MetricsCollector интерфейс коллектора HTTP-метрик
type MetricsCollector interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// statusRecorder запоминает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware записывает длительность и статус каждого запроса.
// В label path идет шаблон маршрута, а не сырой URL - иначе
// кардинальность метрик растет с каждым новым ID.
func MetricsMiddleware(collector MetricsCollector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}

			collector.ObserveHTTPRequest(r.Method, path, rec.status, time.Since(start))
		})
	}
}
