package comparison

import "strings"

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCNPJ renders a 14-digit CNPJ as XX.XXX.XXX/XXXX-XX. Other input is
// returned unchanged.
func FormatCNPJ(cnpj string) string {
	d := digitsOnly(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// ValidCNPJ checks length and both check digits.
func ValidCNPJ(cnpj string) bool {
	d := digitsOnly(cnpj)
	if len(d) != 14 {
		return false
	}
	if strings.Count(d, d[:1]) == 14 {
		return false
	}
	return checkDigit(d[:12], cnpjWeights1) == int(d[12]-'0') &&
		checkDigit(d[:13], cnpjWeights2) == int(d[13]-'0')
}

func checkDigit(part string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(part[i]-'0') * w
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}
