// Package config loads adastra configuration files.
//
// A [Loader] decodes one document of any [v1beta1.Object] kind, checks it
// against the kind's JSON schema and fills in defaults. Errors carry the
// source document so they print with the offending lines annotated.
package config
