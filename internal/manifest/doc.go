// Package manifest parses and validates Generator.yaml, the manifest file at
// the root of every generator package. Parsing enforces the identity
// invariants (non-empty name, semver version); Validate checks the full
// document shape against an embedded JSON schema.
package manifest
