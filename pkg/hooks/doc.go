// Package hooks provides reusable before-fill hooks for model types.
//
// Every hook returns a new data tree; the input passed to FillData is never
// modified.
package hooks
