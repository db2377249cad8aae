/*
Package observability provides tools for monitoring the decomposition engine.

It includes Prometheus collectors fed by lifecycle hooks, an oracle
middleware that times every model call, and hooks that mirror engine events
into a structured logger.
*/
package observability
