// Package advisor turns free-form advisory text into clean, categorized
// recommendation candidates. The stages are pure and run in a fixed
// order: gate, extract, normalize, genericity filter, dedupe,
// categorize. Session state (history, memo, timers) lives elsewhere;
// the only state here is the gate's repeat memo.
package advisor

// Result is one accepted recommendation candidate.
type Result struct {
	Text     string
	Category string
}

// Pipeline chains the stages for one session. It is not safe for
// concurrent use; callers serialize Process calls.
type Pipeline struct {
	gate Gate
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Process runs one advisory text through the full chain and returns the
// accepted candidates in extraction order. existing is a snapshot of the
// stored history texts taken before the batch: candidates are deduplicated
// against that snapshot only, never against each other, so two similar
// phrases from one advisory can both come back when neither matches
// stored history.
func (p *Pipeline) Process(advice string, existing []string) []Result {
	if !p.gate.Admit(advice) {
		return nil
	}

	var results []Result
	for _, raw := range Extract(advice) {
		text, ok := Normalize(raw)
		if !ok {
			continue
		}
		if IsGeneric(text) {
			continue
		}
		if IsDuplicate(text, existing) {
			continue
		}
		results = append(results, Result{Text: text, Category: Categorize(text)})
	}
	return results
}

// Reset clears the gate memo. The store calls this when history is
// cleared so the next advisory is never mistaken for a repeat.
func (p *Pipeline) Reset() {
	p.gate.Reset()
}
