package advisor

import (
	"reflect"
	"testing"
)

func TestPipeline_SingleRecommendation(t *testing.T) {
	p := NewPipeline()

	got := p.Process("I recommend taking a 10 minute walk daily to reduce stress.", nil)
	want := []Result{{Text: "Taking a 10 minute walk daily to reduce stress", Category: "Exercise"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process() = %v, want %v", got, want)
	}
}

func TestPipeline_RepeatYieldsNothing(t *testing.T) {
	p := NewPipeline()
	advice := "I recommend taking a 10 minute walk daily to reduce stress."

	first := p.Process(advice, nil)
	if len(first) != 1 {
		t.Fatalf("first Process() returned %d results, want 1", len(first))
	}
	if got := p.Process(advice, []string{first[0].Text}); got != nil {
		t.Errorf("repeat Process() = %v, want nil", got)
	}
}

func TestPipeline_PlaceholderYieldsNothing(t *testing.T) {
	p := NewPipeline()
	if got := p.Process("Still analyzing your vitals, please wait.", nil); got != nil {
		t.Errorf("Process(placeholder) = %v, want nil", got)
	}
}

func TestPipeline_HydrationAdviceSurvivesBoilerplateFilter(t *testing.T) {
	p := NewPipeline()

	got := p.Process("You should drink more water and stay hydrated.", nil)
	want := []Result{{Text: "Drink more water and stay hydrated", Category: "Nutrition"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process() = %v, want %v", got, want)
	}
}

func TestPipeline_NearDuplicateRejected(t *testing.T) {
	p := NewPipeline()

	first := p.Process("Consider reducing screen time before bed.", nil)
	want := []Result{{Text: "Reducing screen time before bed", Category: CategoryFallback}}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("first Process() = %v, want %v", first, want)
	}

	existing := []string{first[0].Text}
	if got := p.Process("You could try reducing your screen time before sleep.", existing); len(got) != 0 {
		t.Errorf("near-duplicate Process() = %v, want nothing", got)
	}
}

func TestPipeline_SameBatchDuplicatesBothAccepted(t *testing.T) {
	p := NewPipeline()

	// Both captures survive: candidates are only checked against the
	// stored history snapshot, not against each other.
	got := p.Process("I recommend taking short breaks. You should take short breaks.", nil)
	want := []Result{
		{Text: "Taking short breaks", Category: CategoryFallback},
		{Text: "Take short breaks", Category: CategoryFallback},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Process() = %v, want %v", got, want)
	}
}

func TestPipeline_NoExtractableContentStillArmsRepeatMemo(t *testing.T) {
	p := NewPipeline()
	advice := "The pattern here looks entirely ordinary to my eye."

	if got := p.Process(advice, nil); len(got) != 0 {
		t.Fatalf("Process() = %v, want nothing extractable", got)
	}
	// A later, different advisory must still be admitted.
	if got := p.Process("I recommend taking short breaks.", nil); len(got) != 1 {
		t.Errorf("follow-up Process() returned %d results, want 1", len(got))
	}
}

func TestPipeline_ResetClearsRepeatMemo(t *testing.T) {
	p := NewPipeline()
	advice := "I recommend taking a 10 minute walk daily to reduce stress."

	if got := p.Process(advice, nil); len(got) != 1 {
		t.Fatalf("first Process() returned %d results, want 1", len(got))
	}
	if got := p.Process(advice, nil); got != nil {
		t.Fatalf("repeat Process() = %v, want nil", got)
	}

	p.Reset()
	if got := p.Process(advice, nil); len(got) != 1 {
		t.Errorf("Process() after reset returned %d results, want 1", len(got))
	}
}

func TestPipeline_GenericBoilerplateSuppressed(t *testing.T) {
	p := NewPipeline()

	got := p.Process("You should maintain current routine through the week.", nil)
	if len(got) != 0 {
		t.Errorf("Process() = %v, want boilerplate suppressed", got)
	}
}
