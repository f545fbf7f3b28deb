// Package routing turns a natural-language question into an answer from
// exactly one domain agent.
//
// A query flows classifier -> registry -> agent -> provider. The
// classifier scores the query against a keyword policy and may consult
// the model when the policy is inconclusive. The registry maps each
// intent to a single agent; the agent assembles a bounded data context
// from the committed dataset and asks the provider for the answer.
//
// Provider failures never surface to the caller as errors: the router
// returns a degraded result carrying a fallback message instead.
package routing
