// Package http exposes stored snapshots, run resumption, health and
// Prometheus metrics over a chi router.
package http
