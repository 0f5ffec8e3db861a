// internal/version/version.go
package version

// Version is stamped manually on release tags.
const Version = "0.4.1"
