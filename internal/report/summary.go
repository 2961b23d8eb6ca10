package report

import (
	"fmt"
	"strings"
)

// Summary renders a human-readable per-instance result listing
func Summary(v *Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s (%s, event=%s branch=%s)\n", v.RunID, v.Workflow, v.Event, v.Branch)
	for _, inst := range v.Instances {
		mark := "✓"
		if inst.State != "succeeded" {
			mark = "✗"
		}

		name := inst.Template
		if len(inst.Coordinate) > 0 {
			name = fmt.Sprintf("%s[%s]", inst.Template, inst.Coordinate.String())
		}

		fmt.Fprintf(&b, "  %s %s", mark, name)
		if inst.FailedStep >= 0 {
			fmt.Fprintf(&b, " (step %d: %s)", inst.FailedStep, inst.Detail)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Verdict: %s (%d/%d instances succeeded)\n",
		v.State, len(v.Instances)-len(v.Failed), len(v.Instances))

	return b.String()
}
