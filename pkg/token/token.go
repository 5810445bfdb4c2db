// Package token defines the classification tree and the Token value type
// produced by a scan.
package token

import "fmt"

// Type is a node in the token classification tree. Sub-types (e.g.
// Comment.Multiline) relate to their parents through Parent, so consumers
// that only care about broad categories can match on Category instead of
// enumerating every leaf.
type Type int

const (
	// None is not a real classification. It is the zero value, and it marks
	// capture groups in grouped rules that should not produce a token.
	None Type = iota

	// Error classifies input no rule could match. The scanner emits it one
	// character at a time so a scan always covers the whole input.
	Error

	Text
	Whitespace

	Comment
	CommentSingle
	CommentMultiline

	Keyword
	KeywordType

	Name
	NameBuiltin

	String
	StringAffix
	StringChar
	StringEscape

	Number
	NumberBin
	NumberFloat
	NumberHex
	NumberInteger
	NumberOct

	Operator
	OperatorWord

	Punctuation
)

var typeInfo = [...]struct {
	name   string
	parent Type
}{
	None:             {"None", None},
	Error:            {"Error", None},
	Text:             {"Text", None},
	Whitespace:       {"Whitespace", Text},
	Comment:          {"Comment", None},
	CommentSingle:    {"Single", Comment},
	CommentMultiline: {"Multiline", Comment},
	Keyword:          {"Keyword", None},
	KeywordType:      {"Type", Keyword},
	Name:             {"Name", None},
	NameBuiltin:      {"Builtin", Name},
	String:           {"String", None},
	StringAffix:      {"Affix", String},
	StringChar:       {"Char", String},
	StringEscape:     {"Escape", String},
	Number:           {"Number", None},
	NumberBin:        {"Bin", Number},
	NumberFloat:      {"Float", Number},
	NumberHex:        {"Hex", Number},
	NumberInteger:    {"Integer", Number},
	NumberOct:        {"Oct", Number},
	Operator:         {"Operator", None},
	OperatorWord:     {"Word", Operator},
	Punctuation:      {"Punctuation", None},
}

// Parent returns the immediate parent of t, or None for top-level types.
func (t Type) Parent() Type {
	if int(t) < 0 || int(t) >= len(typeInfo) {
		return None
	}
	return typeInfo[t].parent
}

// Category returns the top-level ancestor of t (t itself if it is already
// top-level).
func (t Type) Category() Type {
	for t.Parent() != None {
		t = t.Parent()
	}
	return t
}

// In reports whether t is other or a descendant of other.
func (t Type) In(other Type) bool {
	for {
		if t == other {
			return true
		}
		if t.Parent() == None {
			return false
		}
		t = t.Parent()
	}
}

// String returns the dotted path of the type, e.g. "Comment.Multiline".
func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeInfo) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	if p := typeInfo[t].parent; p != None {
		return p.String() + "." + typeInfo[t].name
	}
	return typeInfo[t].name
}

// Token is one classified span of the source text. Tokens are immutable;
// concatenating the Text of every token of a scan, in order, reproduces the
// scanned input exactly.
type Token struct {
	// Type is the classification of the span.
	Type Type

	// Text is the exact source text of the span.
	Text string

	// Offset is the byte offset of the span in the scanned input. For
	// delegated scans this is already rebased to the outer input.
	Offset int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

func (t Token) String() string {
	return fmt.Sprintf("%s:%q@%d", t.Type, t.Text, t.Offset)
}
