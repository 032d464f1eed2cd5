/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors provides the taxonomy of controller-level errors: a numeric
// CodeError classification (one range per package, akin to HTTP status
// codes), automatic call-site capture, and parent/child chaining compatible
// with the standard errors.Is/errors.As machinery.
package errors

// FuncMap iterates an error and its parents. Returning false stops the walk.
type FuncMap func(e error) bool

// Error extends the standard error with a numeric code, a parent chain and
// call-site trace information.
type Error interface {
	error

	// IsCode reports whether the error's own code equals the given code.
	IsCode(code CodeError) bool
	// HasCode reports whether the error or any of its parents carries the given code.
	HasCode(code CodeError) bool
	// GetCode returns the error's own code.
	GetCode() CodeError

	// Is implements compatibility with the standard errors.Is function.
	Is(e error) bool
	// IsError reports whether err has the same message as this error.
	IsError(err error) bool
	// HasError reports whether err matches this error or any of its parents.
	HasError(err error) bool
	// HasParent reports whether this error carries at least one parent.
	HasParent() bool

	// Add appends non-nil errors as parents of this error.
	Add(parent ...error)
	// SetParent replaces the parent list wholesale.
	SetParent(parent ...error)

	// Map walks this error and its parents depth-first, stopping early if fct returns false.
	Map(fct FuncMap) bool
	// ContainsString reports whether s appears in this error's message or any parent's.
	ContainsString(s string) bool

	// Code returns the raw numeric code.
	Code() uint16
	// CodeError formats this error (code + message) using pattern, or a default pattern if empty.
	CodeError(pattern string) string

	// StringError returns this error's own message, ignoring parents.
	StringError() string
	// GetTrace returns the "file#line" (or "func#line") call site of this error.
	GetTrace() string

	// Unwrap exposes the parent chain to errors.Is/errors.As (Go 1.20+ multi-unwrap).
	Unwrap() []error
}

// New builds an Error with the given numeric code, message, and optional parents.
// The call site (file/line) is captured automatically.
func New(code uint16, msg string, parent ...error) Error {
	return newErr(code, msg, parent...)
}

// Newf is New with fmt.Sprintf-style formatting applied to msg first.
func Newf(code uint16, msg string, args ...interface{}) Error {
	return newErrf(code, msg, args...)
}
