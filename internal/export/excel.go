package export

import (
	"bytes"
	"html"

	"facturex/pkg/models"
)

// excelEmitter writes the report as a single HTML table with Microsoft
// Office namespace hints, the legacy format understood by Excel when served
// as application/vnd.ms-excel. The worksheet-name directive keeps Excel from
// prompting on open.
type excelEmitter struct{}

const excelDocumentHead = `<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel" xmlns="http://www.w3.org/TR/REC-html40">
<head>
<meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
<!--[if gte mso 9]><xml>
<x:ExcelWorkbook><x:ExcelWorksheets><x:ExcelWorksheet>
<x:Name>Factures</x:Name>
<x:WorksheetOptions><x:DisplayGridlines/></x:WorksheetOptions>
</x:ExcelWorksheet></x:ExcelWorksheets></x:ExcelWorkbook>
</xml><![endif]-->
</head>
<body>
<table border="1">
`

const excelDocumentFoot = `</table>
</body>
</html>
`

func (e *excelEmitter) emit(invoices []models.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(excelDocumentHead)

	buf.WriteString("<tr>")
	for _, col := range flatHeader {
		buf.WriteString(`<th style="background-color:#4472C4;color:#FFFFFF;font-weight:bold;">`)
		buf.WriteString(html.EscapeString(col))
		buf.WriteString("</th>")
	}
	buf.WriteString("</tr>\n")

	for i := range invoices {
		buf.WriteString("<tr>")
		for _, field := range flatRow(&invoices[i]) {
			buf.WriteString("<td>")
			buf.WriteString(html.EscapeString(field))
			buf.WriteString("</td>")
		}
		buf.WriteString("</tr>\n")
	}

	buf.WriteString(excelDocumentFoot)
	return buf.Bytes(), nil
}
