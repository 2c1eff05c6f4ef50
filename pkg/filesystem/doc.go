// Package filesystem holds the filesystem seam used by deptool.
//
// Everything that touches recipe files, caches or downloads goes through an
// afero.Fs so tests can run against an in-memory filesystem while commands
// use the real one.
package filesystem
