// Package events holds the event types the search publishes on the bus
// while it runs.
//
//   - IterationEvent: one orchestrator iteration finished
//   - ImprovementEvent: a better route was adopted
//   - ResultEvent: a search run completed
//
// Subscribers such as the metrics collector and the MQTT publisher receive
// them without the search knowing who listens.
package events
