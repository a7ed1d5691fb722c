package redis

import "fmt"

const (
	// KeyPrefixRecord is the prefix for every persisted record
	KeyPrefixRecord = "termtab:record:"
)

// RecordKey returns the Redis key for a named record
func RecordKey(name string) string {
	return KeyPrefixRecord + name
}

// ExtractRecordName extracts the record name from a Redis key
func ExtractRecordName(key string) (string, error) {
	if len(key) <= len(KeyPrefixRecord) || key[:len(KeyPrefixRecord)] != KeyPrefixRecord {
		return "", fmt.Errorf("invalid record key: %s", key)
	}
	return key[len(KeyPrefixRecord):], nil
}
