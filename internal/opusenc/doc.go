// Package opusenc invokes the external Opus encoder as a subprocess and
// tracks every live encoder process in a shared set so an interrupt can
// terminate them gracefully.
//
// The runner never returns encoder failure as a panic or crash: a failed
// start yields [StartError], a non-zero exit yields [ExitError], and the
// caller converts either into a per-job outcome.
package opusenc
