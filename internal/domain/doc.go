// Package domain defines the academic scheduling entities and the rules
// that hold for them regardless of how they are stored or served.
package domain
