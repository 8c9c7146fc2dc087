package version

// Version is the current credage version.
// It is overridden at build time via -ldflags "-X .../internal/version.Version=vX.Y.Z".
var Version = "dev"
