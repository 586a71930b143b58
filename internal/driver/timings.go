package driver

import (
	"encoding/json"
	"fmt"

	"treespan/internal/diag"
	"treespan/internal/observ"
	"treespan/internal/source"
)

type timingPayload struct {
	Kind   string        `json:"kind"`
	Path   string        `json:"path,omitempty"`
	Report observ.Report `json:"report"`
}

// appendTimingDiagnostic records the timer as an OBS diagnostic with the JSON
// report in a note. The entry is kept even when the bag is full.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "load"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.Report.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))

	bag.Append(entry)
}
