// Package openapi ingests OpenAPI 3 descriptions and converts them into the
// neutral document model in pkg/api. Loading validates the description first;
// conversion is deterministic, walking paths in sorted order and methods in a
// fixed canonical order so repeated loads always produce the same operation
// sequence.
package openapi
