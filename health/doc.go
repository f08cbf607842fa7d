// Package health reports the state of the guardrail backends.
//
// A Checker reports one component. NewBackendChecker wraps a ping function
// for a cache or rate limit backend and reports a failing or missing
// backend as Degraded: guarded calls keep working without it, so the
// service stays ready.
//
//	agg := health.NewAggregator()
//	agg.Register(health.NewBackendChecker("redis", redisconn.Healthcheck(client)))
//	health.RegisterHandlers(mux, agg)
//
// Handlers:
//
//	/healthz  liveness, always 200
//	/readyz   200 unless a check is Unhealthy
//	/health   JSON detail for every check
package health
