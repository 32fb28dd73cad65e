// Package file stores snapshots as JSON files in a directory.
package file
