// Package cli turns command-line arguments into an app.Config. It owns the
// command grammar (metadata, operations, builtins), the shared flags, and the
// ExitError type the entrypoint maps onto process exit codes.
package cli
