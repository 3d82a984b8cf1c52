// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables, optionally seeded from a dotenv file
//  2. Command-line flags
//  3. JSON config file
//
// Fields still empty after merging take the values of [defaults].
// The main entry point is [GetStructuredConfig].
package config
