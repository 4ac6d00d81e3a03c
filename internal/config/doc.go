// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. Policy parameters of the
// data-protection core (session timeouts, MFA drift tolerance) live in
// [Security] and fall back to named defaults when unset.
package config
