package html2pdf

import "strings"

// DefaultFilename is used when the requested name sanitizes to nothing.
const DefaultFilename = "document.pdf"

const pdfExtension = ".pdf"

// SafeFilename turns a caller-supplied download name into one safe to put
// in a Content-Disposition header: path separators and characters outside
// the allow-list are stripped, a single .pdf suffix is guaranteed
// (case-insensitively, original casing kept), and an empty result falls
// back to DefaultFilename.
func SafeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if isAllowedFilenameRune(r) {
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), ". ")
	if cleaned == "" {
		return DefaultFilename
	}

	if !hasPDFExtension(cleaned) {
		return cleaned + pdfExtension
	}
	return cleaned
}

// hasPDFExtension reports whether name already ends in .pdf, any casing.
func hasPDFExtension(name string) bool {
	return len(name) > len(pdfExtension) &&
		strings.EqualFold(name[len(name)-len(pdfExtension):], pdfExtension)
}

// isAllowedFilenameRune reports whether r may appear in a download name.
// Path separators, control characters, and shell metacharacters are all
// outside the allow-list.
func isAllowedFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-' || r == '_' || r == ' ' || r == '(' || r == ')':
		return true
	}
	return false
}
