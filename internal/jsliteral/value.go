// Package jsliteral models the subset of JavaScript object-literal syntax the
// model renderers emit: ordered objects, arrays, strings, numbers, booleans,
// null, bare identifier references, regular-expression literals and a single
// top-level call expression. Values can be written in an indented or a
// compact style and parsed back for structural comparison.
package jsliteral

import "strings"

// Value is one node of a literal tree.
type Value interface {
	isValue()
}

// Member is a key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an ordered object literal. Member order is significant and is
// preserved by both the writer and the parser.
type Object struct {
	Members []Member
}

// Array is an array literal.
type Array []Value

// String is a quoted string literal.
type String string

// Int is an integer literal.
type Int int64

// Float is a floating point literal. It always renders with a fraction or an
// exponent so it never reads back as an Int.
type Float float64

// Bool is a boolean literal.
type Bool bool

// Null is the null literal.
type Null struct{}

// Ident is an unquoted reference such as a function name
// ("userService.read").
type Ident string

// Regex is a regular-expression literal.
type Regex struct {
	Pattern string
	Flags   string
}

// Call is a call expression statement: Callee(Args...);
type Call struct {
	Callee string
	Args   []Value
}

func (*Object) isValue() {}
func (Array) isValue()   {}
func (String) isValue()  {}
func (Int) isValue()     {}
func (Float) isValue()   {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (Ident) isValue()   {}
func (Regex) isValue()   {}
func (*Call) isValue()   {}

// NewObject returns an object holding members in the given order.
func NewObject(members ...Member) *Object {
	return &Object{Members: members}
}

// Set appends key unless value is nil. It returns o for chaining.
func (o *Object) Set(key string, value Value) *Object {
	if value == nil {
		return o
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
	return o
}

// SetString appends a string member unless value is empty.
func (o *Object) SetString(key, value string) *Object {
	if value == "" {
		return o
	}
	return o.Set(key, String(value))
}

// SetIdent appends an identifier member unless name is empty.
func (o *Object) SetIdent(key, name string) *Object {
	if name == "" {
		return o
	}
	return o.Set(key, Ident(name))
}

// SetTrue appends a true boolean member when flag is set.
func (o *Object) SetTrue(key string, flag bool) *Object {
	if !flag {
		return o
	}
	return o.Set(key, Bool(true))
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, len(o.Members))
	for _, m := range o.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Len reports the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Members)
}

// RegexFromMatcher builds a regular-expression literal from a matcher that
// is either a bare pattern ("^[a-z]+$") or already delimited ("/^a/i").
func RegexFromMatcher(matcher string) Regex {
	if len(matcher) >= 2 && matcher[0] == '/' {
		if end := strings.LastIndexByte(matcher, '/'); end > 0 && validFlags(matcher[end+1:]) {
			return Regex{Pattern: matcher[1:end], Flags: matcher[end+1:]}
		}
	}
	return Regex{Pattern: matcher}
}

func validFlags(flags string) bool {
	for _, r := range flags {
		if !strings.ContainsRune("dgimsuyv", r) {
			return false
		}
	}
	return true
}
