// Package download resolves recipe download entries and stages the files
// they name.
//
// A download entry is "<url>" or "<url> <destination>". Without a
// destination the file is named after the last segment of the URL path, or
// "noname" when that segment is empty. A destination that only names a
// directory (empty, or ending in a separator) gets the URL file name
// appended. Destinations are expanded against the recipe environment
// ($VAR, ${VAR}, leading ~) and relative ones land in the staging
// directory.
//
// Existing destinations are never fetched again.
package download
