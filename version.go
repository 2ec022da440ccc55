package restkit

// Version is the library semantic version, reported in the default
// client identifier. Override at build time via -ldflags if needed.
var Version = "0.1.0"
