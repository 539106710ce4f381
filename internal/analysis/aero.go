package analysis

import "strings"

const (
	FloorHighlight    = "Uses ground-effect via the floor/venturi to create strong underbody downforce."
	WingHighlight     = "Optimized wing package; look for gurney flaps and efficient endplates to manage vortices."
	DragHighlight     = "Low drag philosophy visible in bodywork packaging and cooling exits."
	DiffuserHighlight = "Powerful diffuser/beam-wing interaction stabilizes the rear at speed."
	BalanceHighlight  = "General balance of downforce and drag; packaging and ride height control are key."
)

type aeroCluster struct {
	keywords  []string
	highlight string
}

var aeroClusters = []aeroCluster{
	{[]string{"ground effect", "venturi", "floor"}, FloorHighlight},
	{[]string{"wing", "rear wing", "front wing", "gurney"}, WingHighlight},
	{[]string{"drag", "slippery", "cd "}, DragHighlight},
	{[]string{"diffuser", "beam wing"}, DiffuserHighlight},
}

// AeroHighlights scans text for aerodynamic concepts and returns canned
// observations, one per matching cluster, or the balance fallback.
func AeroHighlights(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0, len(aeroClusters))
	for _, c := range aeroClusters {
		if containsAny(lower, c.keywords...) {
			out = append(out, c.highlight)
		}
	}
	if len(out) == 0 {
		out = append(out, BalanceHighlight)
	}
	return out
}
