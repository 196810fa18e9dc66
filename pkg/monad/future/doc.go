// Package future provides the asynchronous-result variant, *Future[T].
//
// - Submit/Instance/FromChan: start or wrap a deferred computation
// - Completed/Failed: already resolved futures, no scheduling; the Context
//   forms pick the pool their continuations run on
// - Get/GetContext: wait for the value, failures are *monad.ExecutionError
// - Map/TryMap/Bind/Apply/Join: compose without blocking, continuations run
//   on the pool once their input resolves
// - All: wait for many futures, first failure wins
// - Settle: wait for all of them and join every failure
//
// Tasks run on the core.Pool carried by the context given to Submit, or on
// core.Default. Continuations use the context of the future they extend.
// Failures are never recovered: they travel down the lineage to Get.
//
// Package solo used with Of gives the blocking composition instead, where
// each step waits for its input before returning.
package future
