package export

import "regexp"

// whitespace is the Unicode whitespace class: ASCII space and controls, vertical
// tab, every space separator (Zs), line and paragraph separators and the BOM.
var whitespace = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// PDFFilename is the download name of a quote document: Orcamento_<client>.pdf,
// with every run of whitespace in the client name replaced by an underscore.
// The name is not trimmed, so leading or trailing whitespace also becomes "_".
func PDFFilename(clientName string) string {
	return "Orcamento_" + whitespace.ReplaceAllString(clientName, "_") + ".pdf"
}

// HistoryFilename is the download name of the quote history spreadsheet.
const HistoryFilename = "Orcamentos.xlsx"
