package gormstore

import "testing"

func TestContainsSubjectMatchesCaseInsensitively(t *testing.T) {
	subjects := []string{"math", "Science"}

	for _, target := range []string{"math", "MATH", "science"} {
		if !containsSubject(subjects, target) {
			t.Errorf("containsSubject(%v, %q) = false, want true", subjects, target)
		}
	}
	if containsSubject(subjects, "history") {
		t.Errorf("containsSubject(%v, %q) = true, want false", subjects, "history")
	}
	if containsSubject(nil, "math") {
		t.Error("containsSubject(nil, ...) = true, want false")
	}
}
