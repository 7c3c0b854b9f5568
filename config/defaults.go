package config

// defaultServerSpecs returns built-in [[lsp_servers]] entries for 20
// language ids, grounded on the teacher's project-root-marker table and the
// named server constructors (rust_analyzer, pyright, typescript) the spec
// was distilled from. Commands assume the corresponding LSP server binary
// is already on PATH; users override via mcpls.toml.
func defaultServerSpecs() []ServerSpec {
	return []ServerSpec{
		{LanguageID: "rust", Command: "rust-analyzer", FilePatterns: []string{"**/*.rs"},
			Heuristics: Heuristics{ProjectMarkers: []string{"Cargo.toml", "Cargo.lock"}}},
		{LanguageID: "python", Command: "pyright-langserver", Args: []string{"--stdio"}, FilePatterns: []string{"**/*.py", "**/*.pyi"},
			Heuristics: Heuristics{ProjectMarkers: []string{"pyproject.toml", "setup.py", "requirements.txt", "Pipfile", "poetry.lock"}}},
		{LanguageID: "go", Command: "gopls", FilePatterns: []string{"**/*.go"},
			Heuristics: Heuristics{ProjectMarkers: []string{"go.mod", "go.sum"}}},
		{LanguageID: "typescript", Command: "typescript-language-server", Args: []string{"--stdio"},
			FilePatterns: []string{"**/*.ts", "**/*.tsx", "**/*.mts", "**/*.cts"},
			Heuristics:   Heuristics{ProjectMarkers: []string{"tsconfig.json", "package.json"}}},
		{LanguageID: "javascript", Command: "typescript-language-server", Args: []string{"--stdio"},
			FilePatterns: []string{"**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs"},
			Heuristics:   Heuristics{ProjectMarkers: []string{"package.json"}}},
		{LanguageID: "c", Command: "clangd", FilePatterns: []string{"**/*.c", "**/*.h"},
			Heuristics: Heuristics{ProjectMarkers: []string{"CMakeLists.txt", "Makefile"}}},
		{LanguageID: "cpp", Command: "clangd", FilePatterns: []string{"**/*.cpp", "**/*.cc", "**/*.cxx", "**/*.hpp", "**/*.hh", "**/*.hxx"},
			Heuristics: Heuristics{ProjectMarkers: []string{"CMakeLists.txt"}}},
		{LanguageID: "java", Command: "jdtls", FilePatterns: []string{"**/*.java"},
			Heuristics: Heuristics{ProjectMarkers: []string{"pom.xml", "build.gradle"}}},
		{LanguageID: "ruby", Command: "solargraph", Args: []string{"stdio"}, FilePatterns: []string{"**/*.rb"},
			Heuristics: Heuristics{ProjectMarkers: []string{"Gemfile"}}},
		{LanguageID: "php", Command: "intelephense", Args: []string{"--stdio"}, FilePatterns: []string{"**/*.php"},
			Heuristics: Heuristics{ProjectMarkers: []string{"composer.json"}}},
		{LanguageID: "swift", Command: "sourcekit-lsp", FilePatterns: []string{"**/*.swift"}},
		{LanguageID: "kotlin", Command: "kotlin-language-server", FilePatterns: []string{"**/*.kt", "**/*.kts"}},
		{LanguageID: "scala", Command: "metals", FilePatterns: []string{"**/*.scala", "**/*.sc"}},
		{LanguageID: "zig", Command: "zls", FilePatterns: []string{"**/*.zig"}},
		{LanguageID: "lua", Command: "lua-language-server", FilePatterns: []string{"**/*.lua"}},
		{LanguageID: "shellscript", Command: "bash-language-server", Args: []string{"start"}, FilePatterns: []string{"**/*.sh", "**/*.bash", "**/*.zsh"}},
		{LanguageID: "json", Command: "vscode-json-language-server", Args: []string{"--stdio"}, FilePatterns: []string{"**/*.json"}},
		{LanguageID: "yaml", Command: "yaml-language-server", Args: []string{"--stdio"}, FilePatterns: []string{"**/*.yaml", "**/*.yml"}},
		{LanguageID: "html", Command: "vscode-html-language-server", Args: []string{"--stdio"}, FilePatterns: []string{"**/*.html", "**/*.htm"}},
		{LanguageID: "css", Command: "vscode-css-language-server", Args: []string{"--stdio"}, FilePatterns: []string{"**/*.css", "**/*.scss", "**/*.less"}},
	}
}

// defaultLanguageExtensions returns the built-in [[language_extensions]]
// table consulted before glob patterns, per the extension-map-wins
// resolution of Open Question (a).
func defaultLanguageExtensions() []LanguageExtension {
	return []LanguageExtension{
		{Extensions: []string{"rs"}, LanguageID: "rust"},
		{Extensions: []string{"py", "pyi"}, LanguageID: "python"},
		{Extensions: []string{"go"}, LanguageID: "go"},
		{Extensions: []string{"ts", "mts", "cts"}, LanguageID: "typescript"},
		{Extensions: []string{"tsx"}, LanguageID: "typescriptreact"},
		{Extensions: []string{"js", "mjs", "cjs"}, LanguageID: "javascript"},
		{Extensions: []string{"jsx"}, LanguageID: "javascriptreact"},
		{Extensions: []string{"c", "h"}, LanguageID: "c"},
		{Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"}, LanguageID: "cpp"},
		{Extensions: []string{"java"}, LanguageID: "java"},
		{Extensions: []string{"rb"}, LanguageID: "ruby"},
		{Extensions: []string{"php"}, LanguageID: "php"},
		{Extensions: []string{"swift"}, LanguageID: "swift"},
		{Extensions: []string{"kt", "kts"}, LanguageID: "kotlin"},
		{Extensions: []string{"scala", "sc"}, LanguageID: "scala"},
		{Extensions: []string{"zig"}, LanguageID: "zig"},
		{Extensions: []string{"lua"}, LanguageID: "lua"},
		{Extensions: []string{"sh", "bash", "zsh"}, LanguageID: "shellscript"},
		{Extensions: []string{"json"}, LanguageID: "json"},
		{Extensions: []string{"yaml", "yml"}, LanguageID: "yaml"},
		{Extensions: []string{"html", "htm"}, LanguageID: "html"},
		{Extensions: []string{"css", "scss", "less"}, LanguageID: "css"},
	}
}

// ProjectMarkers returns the default project-root marker table used by the
// heuristics walk when a ServerSpec sets no [lsp_servers.heuristics] of its
// own.
func ProjectMarkers() map[string]string {
	return map[string]string{
		"go.mod":            "go",
		"go.sum":            "go",
		"package.json":      "typescript",
		"yarn.lock":         "typescript",
		"package-lock.json": "typescript",
		"tsconfig.json":     "typescript",
		"Cargo.toml":        "rust",
		"Cargo.lock":        "rust",
		"pyproject.toml":    "python",
		"setup.py":          "python",
		"requirements.txt":  "python",
		"Pipfile":           "python",
		"poetry.lock":       "python",
		"pom.xml":           "java",
		"build.gradle":      "java",
		"Gemfile":           "ruby",
		"composer.json":     "php",
		"CMakeLists.txt":    "cpp",
		"Makefile":          "c",
	}
}
