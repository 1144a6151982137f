package cmd

import (
	"fmt"
	"strings"

	"symres/logging"
	"symres/resolve"
)

// noteReporter turns resolutions that may surprise the user into notes
type noteReporter struct{}

func (noteReporter) ReportResolution(res *resolve.Resolution) {
	if msg := describeResolution(res); msg != "" {
		logging.LogNote("Resolution", msg)
	}
}

// describeResolution explains ambiguous results and misses where some type by
// the name was found but could not be seen.  All other results need no note.
func describeResolution(res *resolve.Resolution) string {
	switch res.Outcome {
	case resolve.OutcomeAmbiguous:
		var accepted []string
		for _, cand := range res.Candidates {
			if cand.Accepted {
				accepted = append(accepted, "`"+cand.Module.Name+"`")
			}
		}

		return fmt.Sprintf("`%s` is ambiguous between modules %s", res.Name, strings.Join(accepted, ", "))
	case resolve.OutcomeNotFound:
		if len(res.Candidates) == 0 {
			return ""
		}

		var rejected []string
		for _, cand := range res.Candidates {
			rejected = append(rejected, fmt.Sprintf("`%s` (%s)", cand.Module.Name, cand.Reason))
		}

		return fmt.Sprintf("`%s` is declared but not visible in %s", res.Name, strings.Join(rejected, ", "))
	}

	return ""
}
