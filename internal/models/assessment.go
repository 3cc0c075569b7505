package models

import (
	"fmt"
	"strings"
	"time"
)

// Advisory is a human-readable warning raised by one threshold rule.
type Advisory struct {
	RuleID  string `json:"rule_id"`
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// Verdict is the binary classifier output.
type Verdict int

const (
	VerdictNormal Verdict = iota
	VerdictAbnormal
)

func (v Verdict) String() string {
	switch v {
	case VerdictNormal:
		return "normal"
	case VerdictAbnormal:
		return "abnormal"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Message is the operator-facing sentence shown for the verdict.
func (v Verdict) Message() string {
	if v == VerdictNormal {
		return "The engine is predicted to be in a normal condition."
	}
	return "Warning! Please investigate further"
}

// VerdictFromClass maps a model class label onto a Verdict. Class 0 is normal;
// every other label needs investigation.
func VerdictFromClass(class int) Verdict {
	if class == 0 {
		return VerdictNormal
	}
	return VerdictAbnormal
}

// MarshalText encodes the verdict label.
func (v Verdict) MarshalText() ([]byte, error) {
	if v != VerdictNormal && v != VerdictAbnormal {
		return nil, fmt.Errorf("invalid verdict %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes "normal" or "abnormal".
func (v *Verdict) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "normal":
		*v = VerdictNormal
	case "abnormal":
		*v = VerdictAbnormal
	default:
		return fmt.Errorf("unknown verdict %q", string(text))
	}
	return nil
}

// ChartBar is one labelled value of the input chart.
type ChartBar struct {
	Field Field   `json:"field"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is the bar-chart series of the raw inputs.
type Chart struct {
	Title string     `json:"title"`
	Bars  []ChartBar `json:"bars"`
}

// Assessment is the full result of one predict action.
type Assessment struct {
	ID             string        `json:"id"`
	Reading        SensorReading `json:"reading"`
	Advisories     []Advisory    `json:"advisories"`
	Verdict        Verdict       `json:"verdict"`
	VerdictMessage string        `json:"verdict_message"`
	Chart          Chart         `json:"chart"`
	CreatedAt      time.Time     `json:"created_at"`
}
