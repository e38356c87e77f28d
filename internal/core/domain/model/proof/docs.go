// Package proof contains the proof-of-delivery capture records: validated QR
// scans and captured signatures attached to orders, waypoints, and entities.
package proof
