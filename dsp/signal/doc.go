// Package signal generates deterministic test signals: sine probes for
// measurement, phase-continuous oscillators for streaming hosts, and seeded
// noise.
package signal
