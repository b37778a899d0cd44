package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Scalingo/sclng-top-languages/model"
)

// PrintReport writes the header lines then one bullet per language
func PrintReport(w io.Writer, report model.LanguagesReport) {
	fmt.Fprintf(w, "Profile URL: %s\n", report.ProfileURL)
	fmt.Fprintln(w, "Five most used languages:")

	for _, l := range report.Languages {
		fmt.Fprintf(w, "* %s (%s%%)\n", l.Language, l.Percentage)
	}
}

func PrintReportJSON(w io.Writer, report model.LanguagesReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
