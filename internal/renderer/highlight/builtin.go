package highlight

// BuiltinProfiles returns the language profiles shipped with the editor.
func BuiltinProfiles() []*Profile {
	cBlock := []string{"/*", "*/"}

	return []*Profile{
		{
			Name:       "go",
			Extensions: []string{".go"},
			Keywords: []string{
				"break", "case", "chan", "const", "continue", "default", "defer",
				"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
				"interface", "map", "package", "range", "return", "select", "struct",
				"switch", "type", "var", "true", "false", "nil", "iota",
			},
			Types: []string{
				"bool", "byte", "complex64", "complex128", "error", "float32", "float64",
				"int", "int8", "int16", "int32", "int64", "rune", "string",
				"uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "any",
			},
			LineComment:      "//",
			BlockComment:     cBlock,
			Strings:          "\"`",
			Chars:            "'",
			MultilineStrings: "`",
			Numbers:          true,
		},
		{
			Name:       "rust",
			Extensions: []string{".rs"},
			Keywords: []string{
				"as", "async", "await", "break", "const", "continue", "crate", "dyn",
				"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
				"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
				"self", "Self", "static", "struct", "super", "trait", "true", "type",
				"unsafe", "use", "where", "while",
			},
			Types: []string{
				"i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64",
				"u128", "usize", "f32", "f64", "bool", "char", "str", "String",
				"Vec", "Option", "Result", "Box",
			},
			LineComment:  "//",
			BlockComment: cBlock,
			Strings:      "\"",
			Chars:        "'",
			Numbers:      true,
		},
		{
			Name:       "c",
			Extensions: []string{".c", ".h", ".cc", ".cpp", ".hpp"},
			Keywords: []string{
				"auto", "break", "case", "const", "continue", "default", "do", "else",
				"enum", "extern", "for", "goto", "if", "inline", "register", "return",
				"sizeof", "static", "struct", "switch", "typedef", "union", "volatile",
				"while", "#include", "#define", "#ifdef", "#ifndef", "#endif", "#if",
				"#else", "NULL",
			},
			Types: []string{
				"char", "double", "float", "int", "long", "short", "signed", "unsigned",
				"void", "size_t", "bool",
			},
			LineComment:  "//",
			BlockComment: cBlock,
			Strings:      "\"",
			Chars:        "'",
			Numbers:      true,
		},
		{
			Name:       "java",
			Extensions: []string{".java"},
			Keywords: []string{
				"abstract", "assert", "break", "case", "catch", "class", "continue",
				"default", "do", "else", "enum", "extends", "final", "finally", "for",
				"if", "implements", "import", "instanceof", "interface", "native",
				"new", "package", "private", "protected", "public", "return", "static",
				"super", "switch", "synchronized", "this", "throw", "throws", "try",
				"volatile", "while", "true", "false", "null",
			},
			Types: []string{
				"boolean", "byte", "char", "double", "float", "int", "long", "short",
				"void", "String", "Object",
			},
			LineComment:  "//",
			BlockComment: cBlock,
			Strings:      "\"",
			Chars:        "'",
			Numbers:      true,
		},
		{
			Name:       "python",
			Extensions: []string{".py", ".pyw", ".pyi"},
			Keywords: []string{
				"and", "as", "assert", "async", "await", "break", "class", "continue",
				"def", "del", "elif", "else", "except", "finally", "for", "from",
				"global", "if", "import", "in", "is", "lambda", "nonlocal", "not",
				"or", "pass", "raise", "return", "try", "while", "with", "yield",
				"True", "False", "None",
			},
			Types: []string{
				"int", "float", "str", "bool", "list", "dict", "set", "tuple", "bytes",
				"object",
			},
			LineComment: "#",
			Strings:     "\"'",
			Numbers:     true,
		},
		{
			Name:       "javascript",
			Extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
			Keywords: []string{
				"async", "await", "break", "case", "catch", "class", "const", "continue",
				"debugger", "default", "delete", "do", "else", "export", "extends",
				"finally", "for", "function", "if", "import", "in", "instanceof", "let",
				"new", "return", "super", "switch", "this", "throw", "try", "typeof",
				"var", "void", "while", "with", "yield", "true", "false", "null",
				"undefined",
			},
			Types:            []string{"Array", "Object", "String", "Number", "Boolean", "Promise", "Map", "Set"},
			LineComment:      "//",
			BlockComment:     cBlock,
			Strings:          "\"'`",
			MultilineStrings: "`",
			Numbers:          true,
		},
		{
			Name:       "typescript",
			Extensions: []string{".ts", ".tsx", ".mts"},
			Keywords: []string{
				"abstract", "as", "async", "await", "break", "case", "catch", "class",
				"const", "continue", "declare", "default", "delete", "do", "else",
				"enum", "export", "extends", "finally", "for", "function", "if",
				"implements", "import", "in", "instanceof", "interface", "keyof", "let",
				"namespace", "new", "private", "protected", "public", "readonly",
				"return", "super", "switch", "this", "throw", "try", "type", "typeof",
				"var", "void", "while", "yield", "true", "false", "null", "undefined",
			},
			Types: []string{
				"any", "boolean", "never", "number", "object", "string", "symbol",
				"unknown", "Array", "Promise", "Record",
			},
			LineComment:      "//",
			BlockComment:     cBlock,
			Strings:          "\"'`",
			MultilineStrings: "`",
			Numbers:          true,
		},
		{
			Name:         "html",
			Extensions:   []string{".html", ".htm"},
			Keywords:     []string{"html", "head", "body", "div", "span", "script", "style", "link", "meta", "title", "a", "p", "ul", "li", "table", "form", "input"},
			Types:        []string{"class", "id", "href", "src", "type", "rel", "name", "content"},
			BlockComment: []string{"<!--", "-->"},
			Strings:      "\"'",
		},
		{
			Name:         "css",
			Extensions:   []string{".css"},
			Keywords:     []string{"important", "inherit", "initial", "none", "auto", "block", "inline", "flex", "grid"},
			Types:        []string{"color", "background", "margin", "padding", "border", "display", "width", "height", "font"},
			BlockComment: cBlock,
			Strings:      "\"'",
			Numbers:      true,
		},
		{
			Name:        "toml",
			Extensions:  []string{".toml"},
			Keywords:    []string{"true", "false"},
			LineComment: "#",
			Strings:     "\"'",
			Numbers:     true,
		},
	}
}
