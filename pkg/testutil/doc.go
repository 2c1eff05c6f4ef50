// Package testutil holds helpers shared by deptool tests: a testify mock of
// the command runner and fixtures for recipe files.
package testutil
