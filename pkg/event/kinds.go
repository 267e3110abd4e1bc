package event

// Well-known kinds. These are naming conveniences for callers and the built-in
// catalog; dispatch treats every kind as an opaque integer.
const (
	KindMetadata              = 0
	KindTextNote              = 1
	KindContacts              = 3
	KindRepost                = 6
	KindReaction              = 7
	KindGenericRepost         = 16
	KindComment               = 1111
	KindHighlight             = 9802
	KindLongForm              = 30023
	KindHandlerRecommendation = 31989
	KindHandlerInformation    = 31990
)

// IsReplaceable reports whether only the latest event per (kind, pubkey) is retained.
func IsReplaceable(kind int) bool {
	return kind == KindMetadata || kind == KindContacts || (kind >= 10000 && kind < 20000)
}

// IsAddressable reports whether only the latest event per (kind, pubkey, d-tag) is retained.
func IsAddressable(kind int) bool {
	return kind >= 30000 && kind < 40000
}
