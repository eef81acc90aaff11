// Package names derives resource names that the backing services require in
// specific shapes.
package names

import "strings"

// StorageAccount converts a resource name into a storage-account-compatible
// name. Storage account names disallow hyphens.
func StorageAccount(name string) string {
	return strings.ReplaceAll(name, "-", "")
}

// Certificate derives a certificate name from a host name. Certificate store
// keys disallow dots.
func Certificate(hostName string) string {
	return strings.ReplaceAll(hostName, ".", "-")
}
