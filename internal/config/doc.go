// Package config provides configuration loading, merging, and validation
// facilities for the VitaScope server.
//
// Configuration is assembled from multiple sources; for every field the
// first source with a non-zero value wins:
//  1. Environment variables, including those loaded from a dotenv file
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
