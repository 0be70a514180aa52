package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"docverify/internal/port"
)

// DecodeRecord parses the JSON text returned by a provider into an ExtractOutput.
func DecodeRecord(text, model string) (*port.ExtractOutput, error) {
	cleaned := StripCodeFences(text)

	var out port.ExtractOutput
	if err := json.Unmarshal([]byte(cleaned), &out.Record); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, Truncate(text, 500))
	}
	normalizeBlank(&out.Record.ShipperName)
	normalizeBlank(&out.Record.Consignee)
	normalizeBlank(&out.Record.CNPJ)
	normalizeBlank(&out.Record.Localization)
	normalizeBlank(&out.Record.NCM4D)
	normalizeBlank(&out.Record.NCM8D)

	out.Record.ExtractionMethod = model
	out.ModelUsed = model
	return &out, nil
}

// StripCodeFences removes a surrounding ``` or ```json fence if the model added one.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Truncate shortens s to maxLen bytes for error messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// normalizeBlank turns "" into nil so absent fields are skipped by the comparator.
func normalizeBlank(s **string) {
	if *s != nil && strings.TrimSpace(**s) == "" {
		*s = nil
	}
}
