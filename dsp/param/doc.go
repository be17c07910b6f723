// Package param holds automatable effect parameters and the surface that
// shares them between the control side (host automation, editor) and the
// audio goroutine.
//
// Each Parameter stores its target value in a single atomic cell. Writers
// validate and clamp before storing; the audio side only loads. No lock is
// taken on either side.
package param
