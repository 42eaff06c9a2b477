// Package workerpool runs fire-and-forget jobs on a bounded ants pool.
// Jobs outlive the request that submitted them, so each job receives a
// context detached from request cancellation but bounded by a timeout.
// Panics are recovered and logged.
package workerpool
