package resolve

import (
	"fmt"

	"symres/mods"
	"symres/sem"
)

// Outcome describes how a resolution query ended
type Outcome int

// Enumeration of resolution outcomes
const (
	OutcomeNotFound   Outcome = iota // no visible type with the name
	OutcomeUnique                    // the only type with the name anywhere
	OutcomeLocal                     // declared by the compilation's own module
	OutcomeReferenced                // the single visible type in a referenced module
	OutcomeAmbiguous                 // several referenced modules expose the name
)

var outcomeNames = map[Outcome]string{
	OutcomeNotFound:   "not found",
	OutcomeUnique:     "unique",
	OutcomeLocal:      "local",
	OutcomeReferenced: "referenced",
	OutcomeAmbiguous:  "ambiguous",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}

	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Reasons a referenced candidate was discarded
const (
	RejectPrivate       = "private"
	RejectNoFriendGrant = "internal without friend grant"
)

// Candidate is a type found in a referenced module while resolving a name
type Candidate struct {
	Module     *mods.Module
	Symbol     *sem.Symbol
	Visibility sem.Visibility

	// Accepted indicates whether the compilation can see the candidate
	Accepted bool

	// Reason is why the candidate was discarded (empty if accepted)
	Reason string
}

// Resolution is the detailed record of a single query.  Its `Symbol` is
// exactly what `ResolveBestType` returns for the same query.
type Resolution struct {
	Name    string
	Outcome Outcome
	Symbol  *sem.Symbol

	// Candidates lists the referenced module types examined in order.  It is
	// empty when the query was answered by the uniqueness probe or the local
	// module.
	Candidates []Candidate
}

// Reporter is an out-of-band sink for resolution details.  Reporters may be
// called concurrently.
type Reporter interface {
	ReportResolution(res *Resolution)
}

// ReporterFunc adapts an ordinary function into a `Reporter`
type ReporterFunc func(res *Resolution)

// ReportResolution calls f(res)
func (f ReporterFunc) ReportResolution(res *Resolution) {
	f(res)
}
