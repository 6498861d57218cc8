// Package manifest parses HCL module manifests.
//
// A manifest declares the interface surface a built-in module wants to
// publish beyond what runtime reflection recovers on its own: descriptor
// metadata, human parameter names, property accessors, and event-handler
// classification. The on-disk grammar:
//
//	module "env_vars" {
//	  description = "Read-only access to process environment variables."
//
//	  metadata {
//	    name    = "env_vars"
//	    version = "1.0.0"
//	    author  = "Logos Core Team"
//	  }
//
//	  operation "Lookup" {
//	    kind = "method"
//	    param "key" { type = string }
//	  }
//	}
//
// Param types use HCL type-constraint expressions (string, number, bool,
// list(string), map(string), any), which map directly onto the cty types the
// registry's parity validation compares against reflected Go signatures.
package manifest
