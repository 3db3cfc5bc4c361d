// Package cli provides the interactive antara journal.
//
// It wires the application context to a read-eval-print loop gated by the
// session lock. While the lock is engaged only unlock, help and exit are
// accepted. A background watcher announces capsules as they become
// openable; it runs under an errgroup bound to the REPL's lifetime.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command list.
package cli
