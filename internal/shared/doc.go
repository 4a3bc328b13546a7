// Package shared holds cross-cutting helpers that belong to no single
// domain package. Keep it small: test utilities live in testutil, and
// anything with business logic belongs next to that logic instead.
package shared
