// Package testdoubles provides spy implementations of the optionstore
// observability interfaces for asserting on instrumentation in tests.
package testdoubles
