package telemetry

// Provider returns the sample under the playback cursor, or nil when nothing
// is loaded.
type Provider interface {
	Get() *Sample
}
