package analysis

// SampleMeeting is the short strategy-review clip the dashboard demo ships with.
func SampleMeeting() ([]Utterance, []Participant) {
	utts := []Utterance{
		{SpeakerIndex: 0, Text: "I think we should expand to Europe. The market research looks very promising."},
		{SpeakerIndex: 1, Text: "I disagree. The costs are too high and the projections are overly optimistic."},
		{SpeakerIndex: 2, Text: "Maybe we can test the waters with a small pilot program first? That could mitigate the risk B is talking about."},
		{SpeakerIndex: 0, Text: "That's a constructive idea, C. A pilot would give us the data we need to make a bigger decision without full-scale commitment."},
		{SpeakerIndex: 1, Text: "A pilot is still a waste of resources if the fundamental market isn't there."},
	}
	roster := []Participant{
		{SpeakerIndex: 0, Label: "Speaker A (Black Shirt)"},
		{SpeakerIndex: 1, Label: "Speaker B (Red Shirt)"},
		{SpeakerIndex: 2, Label: "Speaker C (White Shirt)"},
	}
	return utts, roster
}
