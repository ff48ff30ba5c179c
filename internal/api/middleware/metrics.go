package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/harmoni-app/relay/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latency per route template. Paths the router
// does not serve share one label to keep cardinality bounded.
func Metrics(collector *metrics.Collector, router *mux.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := wrap(w)

			next.ServeHTTP(rec, r)

			collector.ObserveHTTP(routeLabel(router, r), r.Method, rec.Status(), time.Since(start))
		})
	}
}

func routeLabel(router *mux.Router, r *http.Request) string {
	var match mux.RouteMatch
	if router == nil || !router.Match(r, &match) || match.MatchErr != nil || match.Route == nil {
		return unmatchedRoute
	}
	tpl, err := match.Route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
