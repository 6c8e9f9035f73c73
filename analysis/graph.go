package analysis

type pairKey struct{ lo, hi int }

func keyFor(a, b Speaker) pairKey {
	if a.Ordinal > b.Ordinal {
		a, b = b, a
	}
	return pairKey{a.Ordinal, b.Ordinal}
}

// graph proposes one edge per unordered pair of speakers who took
// consecutive turns, keeping the orientation of the first exchange, then
// tops up with ExtraLinks edges between speakers who never did.
func (g *Generator) graph(speakers []Speaker, transcript []TranscriptEntry, perSpeaker map[SpeakerID][]TranscriptEntry) RelationshipGraphData {
	nodes := make([]GraphNode, 0, len(speakers))
	byID := make(map[SpeakerID]Speaker, len(speakers))
	for _, s := range speakers {
		byID[s.ID] = s
		nodes = append(nodes, GraphNode{ID: s.ID, Label: s.Label, Group: s.Ordinal%g.cfg.PaletteSize + 1})
	}

	stats := map[pairKey]*PairStats{}
	var order []pairKey
	for i := 1; i < len(transcript); i++ {
		prev, cur := transcript[i-1], transcript[i]
		if prev.Speaker == cur.Speaker {
			continue
		}
		k := keyFor(byID[prev.Speaker], byID[cur.Speaker])
		ps, ok := stats[k]
		if !ok {
			ps = &PairStats{Source: prev.Speaker, Target: cur.Speaker}
			stats[k] = ps
			order = append(order, k)
		}
		ps.Exchanges++
		ps.ScoreSum += prev.Score + cur.Score
		ps.ScoreCount += 2
	}

	links := make([]GraphLink, 0, len(order)+g.cfg.ExtraLinks)
	for _, k := range order {
		ps := stats[k]
		t, v := g.scorer.Link(*ps)
		links = append(links, GraphLink{Source: ps.Source, Target: ps.Target, Type: t, Value: v})
	}

	if g.cfg.ExtraLinks > 0 {
		var candidates []pairKey
		for i := 0; i < len(speakers); i++ {
			if len(perSpeaker[speakers[i].ID]) == 0 {
				continue
			}
			for j := i + 1; j < len(speakers); j++ {
				if len(perSpeaker[speakers[j].ID]) == 0 {
					continue
				}
				k := keyFor(speakers[i], speakers[j])
				if _, taken := stats[k]; !taken {
					candidates = append(candidates, k)
				}
			}
		}
		g.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		if len(candidates) > g.cfg.ExtraLinks {
			candidates = candidates[:g.cfg.ExtraLinks]
		}
		for _, k := range candidates {
			ps := PairStats{Source: speakers[k.lo].ID, Target: speakers[k.hi].ID}
			t, v := g.scorer.Link(ps)
			links = append(links, GraphLink{Source: ps.Source, Target: ps.Target, Type: t, Value: v})
		}
	}

	return RelationshipGraphData{Nodes: nodes, Links: links}
}
