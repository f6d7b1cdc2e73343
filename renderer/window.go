package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/wealth"
	md "github.com/nao1215/markdown"
)

// WindowsMarkdown renders the current and shadow windows of a focus.
func WindowsMarkdown(focus wealth.Focus, w wealth.Windows) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s Window", focus.Name()))
	doc.PlainText(md.Italic(asOf()))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Window", "From", "To", "Days"},
		Rows: [][]string{
			{md.Bold("Current"), w.Current.From.String(), w.Current.To.String(), strconv.Itoa(w.Current.Len())},
			{"Shadow", w.Shadow.From.String(), w.Shadow.To.String(), strconv.Itoa(w.Shadow.Len())},
		},
	})
	return doc.String()
}
