// Package courier contains the Courier aggregate and its StoragePlace
// entities.
//
// A courier owns its storage places outright (composition); orders are
// referenced by identifier only. Taking an order occupies the first storage
// place that fits it and assigns the order; completing a delivery frees the
// place and completes the order in the same operation.
package courier
