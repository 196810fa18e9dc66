// Package maybe provides the optional-value variant, Maybe[T].
//
// A Maybe is either Present(value) or Absent:
// - Present/Absent/Instance/FromPtr/FromOk: construct a Maybe
// - Get/MustGet/OrElse: read the value, Absent reports monad.ErrNoSuchElement
// - Map/Bind/TryMap/Apply/Join: compose, Absent short-circuits every step
// - Filter/Or/Tee: small same-type helpers
//
// Only the absence signal is converted into Absent. Other errors returned by
// functions passed to TryMap reach the caller.
package maybe
