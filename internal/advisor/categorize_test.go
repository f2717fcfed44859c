package advisor

import (
	"reflect"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "relaxation", text: "Take deep breaths twice daily", want: "Relaxation"},
		{name: "exercise", text: "Take a 10 minute walk daily", want: "Exercise"},
		{name: "stress management", text: "Find ways to cope with deadline pressure", want: "Stress Management"},
		{name: "sleep", text: "Improve your sleep schedule", want: "Sleep & Rest"},
		{name: "nutrition", text: "Drink more water and stay hydrated", want: "Nutrition"},
		{name: "monitoring", text: "Check your posture every hour", want: "Monitoring"},
		{name: "lifestyle", text: "Build a consistent morning routine", want: "Lifestyle"},
		{name: "medical", text: "Consult a doctor about the readings", want: "Medical"},
		{name: "fallback", text: "Unwind with a good book", want: CategoryFallback},
		{name: "earlier category wins", text: "Relax with a short walk", want: "Relaxation"},
		{name: "case-insensitive", text: "SLEEP EARLIER TONIGHT", want: "Sleep & Rest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.text); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	want := []string{
		"Relaxation", "Exercise", "Stress Management", "Sleep & Rest",
		"Nutrition", "Monitoring", "Lifestyle", "Medical", CategoryFallback,
	}
	if got := Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}
