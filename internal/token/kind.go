// Package token defines the lexical vocabulary of Thresh: token kinds,
// keyword lookup, and the Token value the lexer produces.
package token

// Kind tags a Token's lexical category.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLiteral
	FloatLiteral
	StringLiteral
	CStringLiteral
	CharLiteral

	// Keywords
	KwConst
	KwVar
	KwFn
	KwPub
	KwExport
	KwExtern
	KwInline
	KwComptime
	KwStruct
	KwEnum
	KwUnion
	KwError
	KwPacked
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwSwitch
	KwTry
	KwCatch
	KwDefer
	KwBreak
	KwContinue
	KwUse
	KwTest
	KwAsm
	KwVolatile
	KwTrue
	KwFalse
	KwNull
	KwUndefined
	KwAnd
	KwOr
	KwOrelse
	KwAlign
	KwSection
	KwLinksection
	KwCallconv
	KwNoalias
	KwThreadlocal

	// Punctuation / operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semi
	Colon
	ColonColon
	Dot
	DotDot
	DotDotDot
	Arrow
	FatArrow
	Question
	QuestionDefer // ?defer
	PercentDefer  // %defer
	At

	Plus
	Minus
	Star
	Slash
	Percent
	PlusPercent // +%
	MinusPercent
	StarPercent
	ShlPercent // <<%

	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr

	Bang
	EqEq
	BangEq
	Lt
	Gt
	LtEq
	GtEq

	Eq
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	PlusPercentEq
	MinusPercentEq
	StarPercentEq
	ShlPercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq

	kindCount
)

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= KwConst && k <= KwThreadlocal
}

var kindNames = [kindCount]string{
	Invalid: "<invalid>", EOF: "<eof>",
	Ident: "identifier", IntLiteral: "integer literal", FloatLiteral: "float literal",
	StringLiteral: "string literal", CStringLiteral: "c-string literal", CharLiteral: "char literal",
	KwConst: "const", KwVar: "var", KwFn: "fn", KwPub: "pub", KwExport: "export", KwExtern: "extern",
	KwInline: "inline", KwComptime: "comptime", KwStruct: "struct", KwEnum: "enum", KwUnion: "union",
	KwError: "error", KwPacked: "packed", KwReturn: "return", KwIf: "if", KwElse: "else",
	KwWhile: "while", KwFor: "for", KwSwitch: "switch", KwTry: "try", KwCatch: "catch",
	KwDefer: "defer", KwBreak: "break", KwContinue: "continue", KwUse: "use", KwTest: "test",
	KwAsm: "asm", KwVolatile: "volatile", KwTrue: "true", KwFalse: "false", KwNull: "null",
	KwUndefined: "undefined", KwAnd: "and", KwOr: "or", KwOrelse: "orelse", KwAlign: "align",
	KwSection: "section", KwLinksection: "linksection", KwCallconv: "callconv",
	KwNoalias: "noalias", KwThreadlocal: "threadlocal",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Semi: ";", Colon: ":", ColonColon: "::", Dot: ".", DotDot: "..", DotDotDot: "...",
	Arrow: "->", FatArrow: "=>", Question: "?", QuestionDefer: "?defer", PercentDefer: "%defer", At: "@",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	PlusPercent: "+%", MinusPercent: "-%", StarPercent: "*%", ShlPercent: "<<%",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Shl: "<<", Shr: ">>",
	Bang: "!", EqEq: "==", BangEq: "!=", Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	Eq: "=", PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	PlusPercentEq: "+%=", MinusPercentEq: "-%=", StarPercentEq: "*%=", ShlPercentEq: "<<%=",
	AmpEq: "&=", PipeEq: "|=", CaretEq: "^=", ShlEq: "<<=", ShrEq: ">>=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "<unknown>"
}
