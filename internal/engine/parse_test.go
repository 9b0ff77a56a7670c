package engine

import "testing"

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
	}{
		{"easy", DifficultyEasy},
		{"E", DifficultyEasy},
		{" Hard ", DifficultyHard},
		{"m", DifficultyMedium},
		{"", DefaultDifficulty},
		{"banana", DefaultDifficulty},
	}
	for _, c := range cases {
		if got := ParseDifficulty(c.in); got != c.want {
			t.Errorf("ParseDifficulty(%q)=%q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("Daily"); err != nil || k != KindDaily {
		t.Errorf("ParseKind(Daily)=(%q, %v)", k, err)
	}
	if k, err := ParseKind("todo"); err != nil || k != KindTodo {
		t.Errorf("ParseKind(todo)=(%q, %v)", k, err)
	}
	if _, err := ParseKind("chore"); err == nil {
		t.Error("ParseKind(chore) should fail")
	}
}

func TestParseRepeatDays(t *testing.T) {
	got, err := ParseRepeatDays("mon, wed,FRI")
	if err != nil {
		t.Fatalf("ParseRepeatDays: %v", err)
	}
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	// Numbers mix with names, duplicates collapse.
	got, err = ParseRepeatDays("0,sun,6")
	if err != nil {
		t.Fatalf("ParseRepeatDays: %v", err)
	}
	if len(got) != 2 || got[0] != 0 || got[1] != 6 {
		t.Fatalf("got %v, want [0 6]", got)
	}

	// Empty input means every day.
	got, err = ParseRepeatDays("")
	if err != nil {
		t.Fatalf("ParseRepeatDays: %v", err)
	}
	if got != nil {
		t.Fatalf("got %v, want nil", got)
	}

	if _, err := ParseRepeatDays("7"); err == nil {
		t.Error("day 7 should be rejected")
	}
	if _, err := ParseRepeatDays("noday"); err == nil {
		t.Error("unknown day name should be rejected")
	}
}
