// Package iecst provides the lexer grammar for IEC 61131-3 Structured
// Text. Reference: https://en.wikipedia.org/wiki/Structured_text
package iecst

import (
	"github.com/walteh/relex/pkg/lexer"
	"github.com/walteh/relex/pkg/registry"
	"github.com/walteh/relex/pkg/token"
)

// Digit runs in numeric literals, with ' accepted as a digit separator.
const (
	hexpart = `[0-9a-fA-F](?:'?[0-9a-fA-F])*`
	decpart = `\d(?:'?\d)*`

	// Integer literal suffix (e.g. "ull" or "ll").
	intsuffix = `(?:(?:[uU][lL]{0,2})|[lL]{1,2}[uU]?)?`

	// Identifier with Universal Character Name escapes. The first
	// character class keeps digits from starting an identifier.
	identStart = `(?:[A-Za-z_$]|\\u[0-9a-fA-F]{4}|\\U[0-9a-fA-F]{8})`
	identCont  = `(?:[\w$]|\\u[0-9a-fA-F]{4}|\\U[0-9a-fA-F]{8})`
	ident      = identStart + identCont + `*`

	commentSingle = `//[^\n]*\n?`

	// Closed block comment, written so the inner content cannot run past
	// the first "*)".
	commentMultiline = `\(\*[^*]*\*+(?:[^)*][^*]*\*+)*\)`

	conversionTarget = `(?:BOOL|BYTE|D?L?WORD|L?TIME|DATE|DT|TOD|W?CHAR|W?STRING|U?S?D?L?INT|L?REAL)`
	conversionSource = `(?:ANY|BOOL|BYTE|D?L?WORD|L?TIME|DATE|DT|TOD|W?CHAR|W?STRING|U?S?D?L?INT|L?REAL)`
)

// Rules is the rule table, one state per concern. Order within each state
// is load-bearing: keyword and operator-word rules are declared before the
// generic identifier rule so they can never be shadowed by it.
var Rules = lexer.Rules{
	"whitespace": {
		{Pattern: `\n`, Emit: lexer.Emit(token.Whitespace)},
		{Pattern: `[^\S\n]+`, Emit: lexer.Emit(token.Whitespace)},
		// Line continuation.
		{Pattern: `\\\n`, Emit: lexer.Emit(token.Text)},
		{Pattern: commentSingle, Emit: lexer.Emit(token.CommentSingle)},
		{Pattern: commentMultiline, Emit: lexer.Emit(token.CommentMultiline)},
		// Open until EOF, so no ending delimiter.
		{Pattern: `\(\*[\w\W]*`, Emit: lexer.Emit(token.CommentMultiline)},
	},
	"keywords": {
		{Pattern: lexer.Words(``, `\b`,
			"IF", "THEN", "ELSIF", "ELSE", "END_IF", "FOR", "DO",
			"END_FOR", "WHILE", "END_WHILE", "REPEAT", "UNTIL", "BREAK",
			"CONTINUE", "RETURN", "END_REPEAT", "CONSTANT", "VAR",
			"VAR_INPUT", "VAR_OUTPUT", "VAR_STAT", "VAR_IN_OUT", "OF",
			"VAR_GLOBAL", "END_VAR", "PUBLIC", "PRIVATE", "INTERNAL",
			"PROTECTED", "FUNCTION", "PROGRAM", "FUNCTION_BLOCK",
			"CASE", "END_CASE", "END_FUNCTION", "END_PROGRAM",
			"END_FUNCTION_BLOCK", "MOD", "ABS", "ACOS", "ASIN", "ATAN",
			"COS", "EXP", "EXPT", "LN", "LOG", "SIN", "SQRT", "TAN",
			"SEL", "MAX", "MIN", "LIMIT", "MUX", "SHL", "SHR", "ROL",
			"ROR", "INDEXOF", "SIZEOF", "ADR", "REF", "ADRINST",
			"BITADR", "ADD", "MUL", "DIV", "SUB", "TRUNC", "MOVE",
		), Emit: lexer.Emit(token.Keyword)},
	},
	"types": {
		{Pattern: lexer.Words(``, `\b`,
			"BOOL", "BYTE", "WORD", "DWORD", "LWORD", "SINT", "USINT",
			"INT", "UINT", "DINT", "UDINT", "LINT", "ULINT",
			"REAL", "LREAL", "STRING", "WSTRING", "TIME", "LTIME",
			"TIME_OF_DAY", "TOD", "DATE", "DATE_AND_TIME", "DT",
			"POINTER", "ARRAY", "REFERENCE",
		), Emit: lexer.Emit(token.KeywordType)},
	},
	"statements": {
		lexer.Include("keywords"),
		lexer.Include("types"),
		{Pattern: `([LuU]|u8)?(")`,
			Emit: lexer.ByGroups(token.StringAffix, token.String),
			Next: lexer.Push("string")},
		{Pattern: `([LuU]|u8)?(')(\\.|\\[0-7]{1,3}|\\x[0-9a-fA-F]{1,2}|[^\\'\n])(')`,
			Emit: lexer.ByGroups(token.StringAffix, token.StringChar, token.StringChar, token.StringChar)},

		// Hexadecimal floating-point literals.
		{Pattern: `0[xX](?:` + hexpart + `\.` + hexpart + `|\.` + hexpart + `|` + hexpart + `)[pP][+-]?` + hexpart + `[lL]?`,
			Emit: lexer.Emit(token.NumberFloat)},

		{Pattern: `-?(?:` + decpart + `\.` + decpart + `|\.` + decpart + `|` + decpart + `)[eE][+-]?` + decpart + `[fFlL]?`,
			Emit: lexer.Emit(token.NumberFloat)},
		{Pattern: `-?(?:(?:` + decpart + `\.(?:` + decpart + `)?|\.` + decpart + `)[fFlL]?|` + decpart + `[fFlL])`,
			Emit: lexer.Emit(token.NumberFloat)},
		{Pattern: `-?0[xX]` + hexpart + intsuffix, Emit: lexer.Emit(token.NumberHex)},
		{Pattern: `-?0[bB][01](?:'?[01])*` + intsuffix, Emit: lexer.Emit(token.NumberBin)},
		{Pattern: `-?0(?:'?[0-7])+` + intsuffix, Emit: lexer.Emit(token.NumberOct)},
		{Pattern: `-?` + decpart + intsuffix, Emit: lexer.Emit(token.NumberInteger)},
		{Pattern: `:=|:|\+|-|\*|/|>|<`, Emit: lexer.Emit(token.Operator)},
		{Pattern: `\b(?:AND|OR|NOT|TO_` + conversionTarget + `|` + conversionSource + `_TO_` + conversionTarget + `)\b`,
			Emit: lexer.Emit(token.OperatorWord)},
		{Pattern: `[()\[\],.]`, Emit: lexer.Emit(token.Punctuation)},
		{Pattern: `(?:true|false|null)\b`, Emit: lexer.Emit(token.NameBuiltin)},
		{Pattern: ident, Emit: lexer.Emit(token.Name)},
	},
	"string": {
		{Pattern: `"`, Emit: lexer.Emit(token.String), Next: lexer.Pop(1)},
		{Pattern: `\\(?:[\\abfnrtv"']|x[0-9a-fA-F]{2,4}|u[0-9a-fA-F]{4}|U[0-9a-fA-F]{8}|[0-7]{1,3})`,
			Emit: lexer.Emit(token.StringEscape)},
		// All other characters.
		{Pattern: `[^\\"\n]+`, Emit: lexer.Emit(token.String)},
		// Line continuation.
		{Pattern: `\\\n`, Emit: lexer.Emit(token.String)},
		// Stray backslash.
		{Pattern: `\\`, Emit: lexer.Emit(token.String)},
	},
	"root": {
		lexer.Include("whitespace"),
		lexer.Include("keywords"),
		lexer.Include("types"),
		lexer.Default(lexer.Push("statement")),
	},
	"statement": {
		lexer.Include("whitespace"),
		lexer.Include("statements"),
		{Pattern: `\}`, Emit: lexer.Emit(token.Punctuation)},
		{Pattern: `[{;]`, Emit: lexer.Emit(token.Punctuation), Next: lexer.Pop(1)},
	},
}

// Table is the compiled grammar.
var Table = lexer.MustCompile(Rules)

// Grammar carries the registration metadata for the registry.
var Grammar = &registry.Grammar{
	Name:      "IEC Structured Text",
	Aliases:   []string{"iecst", "st"},
	Filenames: []string{"*.st", "*.iecst"},
	MIMETypes: []string{"text/x-iecst"},
	Table:     Table,
}

func init() {
	registry.Register(Grammar)
}
