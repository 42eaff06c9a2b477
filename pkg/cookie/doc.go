// Package cookie sets and reads plain, signed and encrypted HTTP cookies.
//
// Every configured secret is stretched with HKDF-SHA256 into an HMAC key and
// an AES-256-GCM key. The first secret writes; all secrets read, so secrets
// can be rotated by prepending a new one. Flash values are encrypted JSON
// cookies removed on first read.
package cookie
