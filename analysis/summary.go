package analysis

import (
	"fmt"
	"strings"
)

func (g *Generator) summary(points []string, speakers []Speaker, transcript []TranscriptEntry, graph RelationshipGraphData) SummaryData {
	var out []string
	if len(points) > 0 {
		out = append(out, points...)
	} else {
		for i := 0; i < len(transcript) && i < g.cfg.SummaryPoints; i++ {
			out = append(out, transcript[i].Text)
		}
	}
	if out == nil {
		out = []string{}
	}

	return SummaryData{
		Title:               title(len(speakers)),
		OverallSentiment:    string(majority(transcript)),
		Points:              out,
		RelationshipSummary: relationshipSummary(speakers, graph.Links),
	}
}

func title(n int) string {
	switch n {
	case 0:
		return "Meeting Analysis: No Speakers"
	case 1:
		return "Meeting Analysis: 1 Speaker"
	default:
		return fmt.Sprintf("Meeting Analysis: %d Speakers", n)
	}
}

func relationshipSummary(speakers []Speaker, links []GraphLink) string {
	if len(links) == 0 {
		return "No interactions between speakers were recorded."
	}
	labels := make(map[SpeakerID]string, len(speakers))
	for _, s := range speakers {
		labels[s.ID] = s.Label
	}

	strongest := func(t LinkType) (GraphLink, bool) {
		var best GraphLink
		found := false
		for _, l := range links {
			if l.Type == t && (!found || l.Value > best.Value) {
				best, found = l, true
			}
		}
		return best, found
	}

	var parts []string
	if l, ok := strongest(LinkSupport); ok {
		parts = append(parts, fmt.Sprintf("%s and %s demonstrated a supportive dynamic.", labels[l.Source], labels[l.Target]))
	}
	if l, ok := strongest(LinkConflict); ok {
		parts = append(parts, fmt.Sprintf("A conflict axis was observed between %s and %s.", labels[l.Source], labels[l.Target]))
	}
	if len(parts) == 0 {
		return "Interactions between speakers were mostly neutral."
	}
	return strings.Join(parts, " ")
}
