package parser

import "docverify/internal/domain"

var documentNames = map[domain.DocumentKind]string{
	domain.DocumentKindBL:      "bill of lading",
	domain.DocumentKindInvoice: "commercial invoice",
	domain.DocumentKindPacking: "packing list",
}

// BuildShippingPrompt returns the extraction prompt for a trade document of the given kind.
func BuildShippingPrompt(kind domain.DocumentKind) string {
	name, ok := documentNames[kind]
	if !ok {
		name = "shipping document"
	}
	return `You are a trade document data extraction assistant. Analyze the provided ` + name + ` and extract the following fields into a single JSON object.

IMPORTANT INSTRUCTIONS:
- The document may span multiple pages. Read every page before answering.
- "cnpj" is the Brazilian company registry number of the consignee/importer; keep it as printed.
- "ncm_4d" is the first 4 digits of the NCM/HS code, "ncm_8d" the full 8-digit NCM code, digits only.
- "packages" is the total number of packages/volumes as an integer.
- "gross_weight" is the total gross weight in kilograms, "cbm" the total volume in cubic meters.
- Numbers must use a dot as decimal separator and no thousands separators.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation. Just the raw JSON object:
{
  "shipper_name": "",
  "consignee": "",
  "cnpj": "",
  "localization": "",
  "ncm_4d": "",
  "ncm_8d": "",
  "packages": 0,
  "gross_weight": 0,
  "cbm": 0,
  "confidence": 0.0
}

"confidence" is your overall confidence between 0.0 and 1.0.
If a field is not present in the document, use null.`
}
