// Package health serves liveness and readiness checks.
//
// Liveness always answers OK while the process runs. Readiness runs a set of
// named checks concurrently (for the intake service: the storage backend and
// the notification backend) and answers 503 if any of them fails.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "storage": store.Ping,
//	}, health.WithLogger(log)))
//
// Plain text is returned by default. JSON is returned for
// Accept: application/json or ?format=json:
//
//	{"status":"unhealthy","checks":{"storage":{"status":"unhealthy","error":"health: check timeout"}}}
package health
