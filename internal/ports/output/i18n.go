package output

// T renders operator-facing console messages in the configured locale.
type T interface {
	// T renders the message identified by key; data fills template
	// placeholders and may be nil.
	T(key string, data map[string]any) string
}
