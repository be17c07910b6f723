// Package plugin assembles one instance of the Bruh Sine effect: its
// parameter surface, one smoother per parameter, and the sine shaper.
//
// A host bridge calls Process (or ProcessInterleaved) once per block from
// its audio goroutine and Reset between blocks on a stream discontinuity.
// Editors and automation write through Params and never touch the smoothers
// or the shaper. Each Plugin owns all of its state; instances never share
// anything.
package plugin
