// Package errors provides the classified error primitives used across docnav.
//
// Every failure surfaced to the CLI is a ClassifiedError carrying a category,
// a severity and a structured context map. The fluent ErrorBuilder keeps
// construction uniform:
//
//	err := errors.ValidationError("duplicate document reference").
//		WithContext("doc_id", id).
//		WithContext("paths", paths).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
