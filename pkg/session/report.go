package session

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// TextareaReport describes one textarea after autosizing.
type TextareaReport struct {
	Page         string  `json:"page,omitempty"`
	Element      string  `json:"element"`
	Tracked      bool    `json:"tracked"`
	State        string  `json:"state,omitempty"`
	Height       string  `json:"height"`
	OverflowY    string  `json:"overflowY"`
	ScrollHeight float64 `json:"scrollHeight"`
	ClientHeight float64 `json:"clientHeight"`
	OffsetHeight float64 `json:"offsetHeight"`
}

func (s *Session) Report() []TextareaReport {
	var out []TextareaReport
	for _, el := range s.Page.Textareas() {
		r := TextareaReport{
			Element:      el.String(),
			Tracked:      s.Autosizer().Tracked(el),
			Height:       el.Style().GetPropertyValue("height"),
			OverflowY:    el.Style().GetPropertyValue("overflow-y"),
			ScrollHeight: el.ScrollHeight(),
			ClientHeight: el.ClientHeight(),
			OffsetHeight: el.OffsetHeight(),
		}
		if state, ok := s.Autosizer().State(el); ok {
			r.State = state.String()
		}
		out = append(out, r)
	}
	return out
}

// WriteReport prints reports as an aligned table.
func WriteReport(w io.Writer, reports []TextareaReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tSTATE\tHEIGHT\tOVERFLOW-Y\tSCROLL\tCLIENT\tOFFSET")
	for _, r := range reports {
		state := r.State
		if !r.Tracked {
			state = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%g\t%g\n",
			r.Element, state, orDash(r.Height), orDash(r.OverflowY), r.ScrollHeight, r.ClientHeight, r.OffsetHeight)
	}
	return tw.Flush()
}

func WriteReportJSON(w io.Writer, reports []TextareaReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
