// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pdftext: the aggregate
// Record written to JSON, per-file outcomes, and stage configuration.
package types
