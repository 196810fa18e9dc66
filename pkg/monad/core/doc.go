// Package core contains the plumbing behind asynchronous containers: the
// worker pool that runs their tasks and the options carried by context that
// configure it (worker limit, logger, pool). It does not know about any
// container type; package future builds on it. Pool.Track counts goroutines
// that wait outside the worker limit, so Pool.Wait covers them and the jobs
// they submit.
package core
