// Package mocks provides hand-written test doubles for the service and
// store interfaces. Each mock exposes function fields that tests override
// and falls back to fixed default values otherwise.
package mocks
