// Package lock implements the PIN screen lock that gates all journal
// content.
//
// A Lock is Disabled when no PIN is stored, Locked when one is, Unlocked
// after the correct four digits are entered, and Throttled for a growing
// interval after repeated wrong guesses. The credential lives in the
// antara_pin slot as an argon2id hash; attempt counters live in
// antara_pin_attempts so a restart does not reset the backoff.
package lock
