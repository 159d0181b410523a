package bench

import (
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/hephbuild/hsize/lib/hiter"
)

func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func FormatHint(h hiter.Hint) string {
	if !h.Bounded {
		return fmt.Sprintf("%v..", h.Lower)
	}
	if h.IsExact() {
		return strconv.Itoa(h.Lower)
	}

	return fmt.Sprintf("%v..%v", h.Lower, h.Upper)
}

func measurementRow(scenario string, m Measurement) []string {
	return []string{
		scenario,
		string(m.Variant),
		FormatHint(m.Hint),
		strconv.Itoa(m.Len),
		strconv.Itoa(m.Cap),
		strconv.FormatUint(m.Allocs, 10),
		humanize.Bytes(m.Bytes),
		m.Elapsed.String(),
		m.Fingerprint,
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func WriteText(w io.Writer, results []Result, plain bool) error {
	rows := make([][]string, 0, len(results)*2)
	for _, res := range results {
		rows = append(rows, measurementRow(res.Scenario, res.Plain), measurementRow("", res.Estimated))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("scenario", "variant", "hint", "len", "cap", "allocs", "bytes", "elapsed", "fingerprint").
		Rows(rows...)

	if !plain {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle()
		})
	}

	_, err := fmt.Fprintln(w, t.String())

	return err
}
