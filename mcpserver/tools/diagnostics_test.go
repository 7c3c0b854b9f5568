package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcplsbridge/notifications"
)

func TestFormatDiagnosticsEmpty(t *testing.T) {
	result := formatDiagnostics(notifications.DiagnosticsEntry{})
	assert.Contains(t, result, "DIAGNOSTICS")
	assert.Contains(t, result, "No diagnostics found")
}

func TestFormatDiagnosticsGroupsBySeverity(t *testing.T) {
	entry := notifications.DiagnosticsEntry{
		URI: "file:///test.go",
		Diagnostics: []notifications.Diagnostic{
			{"message": "undefined: foo", "severity": float64(1), "source": "gopls"},
			{"message": "unused import", "severity": float64(2)},
		},
	}

	result := formatDiagnostics(entry)
	assert.Contains(t, result, "ERROR")
	assert.Contains(t, result, "undefined: foo")
	assert.Contains(t, result, "[gopls]")
	assert.Contains(t, result, "WARNING")
	assert.Contains(t, result, "unused import")
}
