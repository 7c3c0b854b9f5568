package documents

import "strings"

// extensionLanguage maps a file extension (without the leading dot) to the
// LSP languageId sent in textDocument/didOpen.
var extensionLanguage = map[string]string{
	"rs":         "rust",
	"py":         "python",
	"pyw":        "python",
	"pyi":        "python",
	"js":         "javascript",
	"mjs":        "javascript",
	"cjs":        "javascript",
	"ts":         "typescript",
	"mts":        "typescript",
	"cts":        "typescript",
	"tsx":        "typescriptreact",
	"jsx":        "javascriptreact",
	"go":         "go",
	"c":          "c",
	"h":          "c",
	"cpp":        "cpp",
	"cc":         "cpp",
	"cxx":        "cpp",
	"hpp":        "cpp",
	"hh":         "cpp",
	"hxx":        "cpp",
	"java":       "java",
	"rb":         "ruby",
	"php":        "php",
	"swift":      "swift",
	"kt":         "kotlin",
	"kts":        "kotlin",
	"scala":      "scala",
	"sc":         "scala",
	"zig":        "zig",
	"lua":        "lua",
	"sh":         "shellscript",
	"bash":       "shellscript",
	"zsh":        "shellscript",
	"json":       "json",
	"toml":       "toml",
	"yaml":       "yaml",
	"yml":        "yaml",
	"xml":        "xml",
	"html":       "html",
	"htm":        "html",
	"css":        "css",
	"scss":       "scss",
	"less":       "less",
	"md":         "markdown",
	"markdown":   "markdown",
}

// DetectLanguageID returns the LSP languageId for path based on its
// extension, defaulting to "plaintext" for unrecognized extensions.
func DetectLanguageID(path string) string {
	ext := strings.ToLower(extOf(path))
	if lang, ok := extensionLanguage[ext]; ok {
		return lang
	}
	return "plaintext"
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || i == len(path)-1 {
		return ""
	}
	slash := strings.LastIndexAny(path, "/\\")
	if slash > i {
		return ""
	}
	return path[i+1:]
}
