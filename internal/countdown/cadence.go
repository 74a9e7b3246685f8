package countdown

// ShouldNotify reports whether a player is told about the remaining seconds:
// every ten seconds while far from expiry, then every second for the last five.
func ShouldNotify(remaining int) bool {
	return remaining > 0 && (remaining <= 5 || remaining%10 == 0)
}
