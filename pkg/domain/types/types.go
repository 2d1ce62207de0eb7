package types

// Version is the application version, overridden at build time via
// -ldflags="-X github.com/m-mizutani/warden/pkg/domain/types.Version=..."
var Version = "dev"
