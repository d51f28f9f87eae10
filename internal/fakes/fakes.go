// Package fakes holds minimock mocks of the io interfaces the storage layers
// are written against.
package fakes
