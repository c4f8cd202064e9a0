// Package testsupport holds fixture and golden helpers shared by package
// tests. Set UPDATE_GOLDENS=1 to rewrite golden files.
package testsupport
