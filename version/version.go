package version

// Version is the application version, recorded into migration_history when
// the schema is applied.
var Version = "0.1.0"
