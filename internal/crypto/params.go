package crypto

// UseTestParams lowers the scrypt cost so tests of dependent packages stay fast.
// Data encrypted afterwards can only be decrypted by a process using the same setting.
func UseTestParams() {
	scryptN = 1 << 10
}
