// Package solo contains the default, synchronous implementations of the
// capability operations. They work for any variant that supplies an
// monad.Instance, and every variant package builds on them.
//
// Highlights:
// - Apply: unwrap a wrapped function and a wrapped value, lift the result
// - Yield: lift a plain function with Unit, then Apply it
// - Join: flatten one level using Get of the outer container
// - Fail: default failure hook, the error goes back to the caller
// - Map/TryMap: transform the value, failures routed through Instance.Fail
// - Bind: Map into the nested container, then Join
// - Tee/Finally: side effects and reduction to a plain value
//
// Every operation calls Get on its input, so on asynchronous containers it
// blocks until the input resolves.
package solo
