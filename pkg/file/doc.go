// Package file stores uploaded files behind the Storage interface.
//
// LocalStorage writes under a base directory and serves files from a URL
// prefix. S3Storage writes to an S3-compatible bucket. Both name stored
// objects by a random UUID plus the sanitized extension of the upload, so
// user-supplied names never reach the filesystem or the bucket key.
package file
