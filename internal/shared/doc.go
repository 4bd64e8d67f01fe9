// Package shared holds helpers used across packages that belong to no single
// domain. The testutil subpackage captures slog output for assertions in tests.
package shared
