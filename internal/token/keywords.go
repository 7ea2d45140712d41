package token

var keywords = map[string]Kind{
	"const": KwConst, "var": KwVar, "fn": KwFn, "pub": KwPub, "export": KwExport,
	"extern": KwExtern, "inline": KwInline, "comptime": KwComptime,
	"struct": KwStruct, "enum": KwEnum, "union": KwUnion, "error": KwError, "packed": KwPacked,
	"return": KwReturn, "if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor,
	"switch": KwSwitch, "try": KwTry, "catch": KwCatch, "defer": KwDefer,
	"break": KwBreak, "continue": KwContinue, "use": KwUse, "test": KwTest,
	"asm": KwAsm, "volatile": KwVolatile, "true": KwTrue, "false": KwFalse,
	"null": KwNull, "undefined": KwUndefined, "and": KwAnd, "or": KwOr, "orelse": KwOrelse,
	"align": KwAlign, "section": KwSection, "linksection": KwLinksection,
	"callconv": KwCallconv, "noalias": KwNoalias, "threadlocal": KwThreadlocal,
}

// LookupKeyword returns the keyword Kind for text, or (Ident, false) if text
// is an ordinary identifier.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
