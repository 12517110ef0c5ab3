package grammar

import "embed"

// builtinGrammarsFS embeds the built-in grammars directory.
//
//go:embed grammars/*.yml
var builtinGrammarsFS embed.FS
