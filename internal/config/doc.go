// Package config provides configuration loading, merging, and validation
// facilities for the sync client.
//
// Configuration is assembled from multiple sources and merged with mergo.
// A field set by an earlier source is not overwritten by a later one:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetClientConfig], which maps the merged
// [StructuredConfig] to the [ClientConfig] view used at startup and fills
// in defaults.
package config
