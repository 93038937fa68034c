package domain

// Zero overwrites b in place. Callers use it on plaintext and serialized key
// material once those bytes have been handed off.
func Zero(b []byte) {
	clear(b)
}
