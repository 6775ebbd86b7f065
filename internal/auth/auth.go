// Package auth provides staff accounts and access tokens.
// Other contexts rely on httpkit.Identity, populated from the token, rather
// than importing this package.
package auth
