package ir

const (
	// SchemaVersion is the version of the record layout.
	SchemaVersion = "1"

	// EngineVersion is the knots engine version stamped on sessions.
	EngineVersion = "0.1.0"
)
