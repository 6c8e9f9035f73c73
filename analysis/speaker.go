package analysis

import "fmt"

// IDForOrdinal maps 0->A, 25->Z, 26->AA, 27->AB and so on (bijective base 26).
func IDForOrdinal(n int) SpeakerID {
	if n < 0 {
		panic(fmt.Sprintf("analysis: negative speaker ordinal %d", n))
	}
	var buf [16]byte
	i := len(buf)
	for n++; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return SpeakerID(buf[i:])
}

// ResolveSpeakers assigns ids by first appearance in utts, then appends
// roster participants that never spoke, in roster order. Roster labels win
// over the default "Speaker <id>".
func ResolveSpeakers(utts []Utterance, roster []Participant) []Speaker {
	labels := make(map[int]string, len(roster))
	for _, p := range roster {
		if p.Label != "" {
			labels[p.SpeakerIndex] = p.Label
		}
	}

	seen := map[int]bool{}
	var out []Speaker
	add := func(idx int) {
		if seen[idx] {
			return
		}
		seen[idx] = true
		id := IDForOrdinal(len(out))
		label := labels[idx]
		if label == "" {
			label = "Speaker " + string(id)
		}
		out = append(out, Speaker{ID: id, SpeakerIndex: idx, Label: label, Ordinal: len(out)})
	}
	for _, u := range utts {
		add(u.SpeakerIndex)
	}
	for _, p := range roster {
		add(p.SpeakerIndex)
	}
	return out
}

// LabeledUtterance is the alternative collaborator shape where the speaker is
// only known by a display label.
type LabeledUtterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// FromLabeled numbers labels by first appearance and returns the matching
// roster so the labels survive into the bundle.
func FromLabeled(in []LabeledUtterance) ([]Utterance, []Participant) {
	idx := map[string]int{}
	utts := make([]Utterance, 0, len(in))
	var roster []Participant
	for _, u := range in {
		i, ok := idx[u.Speaker]
		if !ok {
			i = len(idx)
			idx[u.Speaker] = i
			roster = append(roster, Participant{SpeakerIndex: i, Label: u.Speaker})
		}
		utts = append(utts, Utterance{SpeakerIndex: i, Text: u.Text})
	}
	return utts, roster
}
