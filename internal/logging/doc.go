// Package logging sets up the structured logger shared by the binaries.
package logging
