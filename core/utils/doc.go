// Package utils provides common utility functions for the asset-cache application.
// It includes helpers for asset key normalization, query flag parsing and other
// shared logic that doesn't fit into domain-specific packages.
package utils
