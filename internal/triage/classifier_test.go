package triage

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Result
	}{
		{
			text: "I need medical assistance at 123 Main St. I have a broken leg and can't move.",
			want: Result{Urgency: "Low", Type: "Medical", Location: "123 Main St"},
		},
		{
			text: "Urgent evacuation needed at 321 Elm Blvd due to rising flood waters.",
			want: Result{Urgency: "High", Type: "Food", Location: "321 Elm Blvd due to rising flood waters"},
		},
		{
			text: "We need help soon, the roof collapsed",
			want: Result{Urgency: "Medium", Type: "Shelter", Location: "Unknown"},
		},
		{
			text: "Looking for my cat",
			want: Result{Urgency: "Low", Type: "Other", Location: "Unknown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
