// Package services contains stateless domain services that coordinate
// several aggregates without owning state of their own.
package services
