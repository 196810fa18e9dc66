// Package monad defines the Functor -> Applicative -> Monad capabilities
// shared by every container in this module, the error taxonomy and a few
// helpers used to check the laws.
//
// Go has no higher-kinded types, so the variant of a container (its witness)
// is carried by an Instance value rather than by a type parameter:
// - Functor: Get the wrapped value
// - Applicative: Kind of the variant, plain values lifted through Instance.Unit
// - Monad: Join and Bind, implemented once in package solo
// - Instance: Unit and Fail, the only primitives a variant supplies
//
// Concrete variants live in packages maybe and future.
package monad
