package units

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// QuantityLexer tokenizes quantities ("0.33 uW", "328.91 um2") and integer
// ranges ("8..64").
var QuantityLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},

	// Must come before the numbers so "8..64" never lexes as a real
	{Name: "Range", Pattern: `\.\.`},

	{Name: "Real", Pattern: `[-+]?[0-9]+\.[0-9]+([eE][-+]?[0-9]+)?`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},

	// Unit symbols, optionally squared (um2, mm², µW)
	{Name: "Unit", Pattern: `[a-zA-Zµ]+[23²]?`},
})
