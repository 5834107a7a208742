package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes pushed to diagnostic listeners.
const (
	CodeSettle    = "SEQ.SETTLE"
	CodeBounce    = "SEQ.BOUNCE"
	CodeIgnored   = "SEQ.TRIGGER_IGNORED"
	CodeDriver    = "LED.WRITE_FAILED"
	CodeBadCmd    = "CTRL.UNKNOWN"
	CodeDemoStart = "DEMO.RUNNING"
	CodeDemoDone  = "DEMO.DONE"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Settled reports a glyph reaching its endpoint.
func Settled(from, active, direction int) Diagnostic {
	return Diagnostic{
		Severity: Info, Code: CodeSettle, Summary: "Glyph settled",
		Evidence: map[string]any{"from": from, "active": active, "direction": direction},
	}
}

// Bounced reports a settle at either end of the chain.
func Bounced(active, direction int) Diagnostic {
	return Diagnostic{
		Severity: Info, Code: CodeBounce, Summary: "Reversed at chain end",
		Evidence: map[string]any{"active": active, "direction": direction},
	}
}

// Ignored reports a trigger that arrived while a glyph was moving.
func Ignored(active int, scale float64) Diagnostic {
	return Diagnostic{
		Severity: Warn, Code: CodeIgnored, Summary: "Trigger ignored mid burst",
		LikelyCauses: []string{"tap arrived before the previous glyph settled"},
		Evidence:     map[string]any{"active": active, "scale": scale},
	}
}

// DriverFailed reports a strip write error.
func DriverFailed(err error) Diagnostic {
	return Diagnostic{
		Severity: Err, Code: CodeDriver, Summary: "LED strip write failed", Detail: err.Error(),
		LikelyCauses:   []string{"SPI port busy or unplugged", "pixel count does not match the strip"},
		SuggestedFixes: []string{"check led.port", "check led.pixels_per_part against the wiring"},
	}
}
