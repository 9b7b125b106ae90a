// Package generic holds small type-parameterized helpers: a value holder,
// source and sink adapters, an ordered maximum, a type filter, a mapper
// and a few printing helpers.
//
// None of them share state; each can be used on its own.
package generic
