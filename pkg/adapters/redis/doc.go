// Package redis stores snapshots in Redis and provides a Redis-backed distributed lock.
package redis
