package driver

import (
	"encoding/json"
	"fmt"

	"sweet/internal/diag"
	"sweet/internal/observ"
	"sweet/internal/source"
)

// timingNote is the JSON carried in the note of an ObsTimings diagnostic.
type timingNote struct {
	Path string `json:"path"`
	observ.Report
}

// recordTimings attaches report to bag as an info diagnostic. The entry is
// kept even when bag is already full.
func recordTimings(bag *diag.Bag, path string, report observ.Report) {
	raw, err := json.Marshal(timingNote{Path: path, Report: report})
	if err != nil {
		return
	}
	msg := fmt.Sprintf("%s: %.2f ms", path, report.TotalMS)
	if slow, ok := report.Slowest(); ok {
		msg += fmt.Sprintf(", slowest %s", slow.Name)
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).WithNote(source.Span{}, string(raw))
	if !bag.Add(d) {
		extra := diag.NewBag(1)
		extra.Add(d)
		bag.Merge(extra)
	}
}
