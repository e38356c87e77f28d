// Package driver contains the Driver aggregate: fleet drivers who are
// assigned to orders, report their location, and carry at most one current
// job at a time.
package driver
