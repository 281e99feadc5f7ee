package redis

const (
	// KeyPrefixSnapshot is the prefix for snapshot keys, suffixed by host
	KeyPrefixSnapshot = "aboutme:snapshot:"
	// KeyPrefixGenerations is the prefix for the per-host list of generation IDs
	KeyPrefixGenerations = "aboutme:generations:"
)

// SnapshotKey returns the Redis key holding the snapshot for host
func SnapshotKey(host string) string {
	return KeyPrefixSnapshot + host
}

// GenerationsKey returns the Redis key of the generation history for host
func GenerationsKey(host string) string {
	return KeyPrefixGenerations + host
}
