// Package kernel contains the shared value objects of the domain model:
// internal identifiers (UUID), public-facing identifiers (PublicID), and
// geographic locations. All types are immutable and safe for concurrent use.
package kernel
