// Package kernel provides the shared domain primitives of the dispatch
// system:
//
//   - UUID: identifier value object with validation and JSON support
//   - Location: a validated point on the 10x10 delivery grid with
//     Manhattan-distance semantics
//   - DomainEvent / Aggregate: the contracts tying aggregates to the
//     transactional outbox
//
// All value objects are immutable, reject their zero values through the
// constructor-guard pattern, and are safe for concurrent use.
package kernel
