package service

import (
	"strings"
	"unicode/utf8"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/pkg/printer"
)

// RenderText renders a receipt as plain text for preview. Centered lines are
// indented with spaces; no line carries trailing spaces from centering.
func RenderText(doc *entity.ReceiptDocument) string {
	out := make([]string, len(doc.Lines))
	for i, line := range doc.Lines {
		out[i] = line.Text
		if line.Align == entity.AlignCenter {
			if pad := (doc.Width - utf8.RuneCountInString(line.Text)) / 2; pad > 0 {
				out[i] = strings.Repeat(" ", pad) + line.Text
			}
		}
	}
	return strings.Join(out, "\n")
}

// RenderESCPOS renders a receipt as an ESC/POS job, ending with a partial cut.
func RenderESCPOS(doc *entity.ReceiptDocument) []byte {
	job := printer.NewDocument(doc.Width)

	for _, line := range doc.Lines {
		if line.Rule {
			job.Separator(rulerChar)
			continue
		}

		align := printer.AlignLeft
		if line.Align == entity.AlignCenter {
			align = printer.AlignCenter
		}

		if line.Large {
			job.SetFontSize(printer.FontDouble)
		}
		job.Styled(line.Text, align, line.Bold)
		if line.Large {
			job.SetFontSize(printer.FontNormal)
		}
	}

	job.FeedLines(3).
		PartialCut()

	return job.Bytes()
}
