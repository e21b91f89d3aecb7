package alpha

import (
	"strings"
	"testing"
)

const sampleCSV = `
"Legs · Day 2 · Week 4 · Push-Pull-Legs";"2026-02-19 4:54 h";"1:02 hr"
"1. Hack Squats · Machine · 8 reps";"WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
#;KG;REPS;RIR
1;115;8;1
2;115;10;1
3;115;10;1
"2. Sumo Squats · Smith machine · 10 reps";"WU1 · 35 kg · 8 reps"
#;KG;REPS;RIR
1;70;8;1
2;70;12;1
"3. Hyperextensions on Roman Chair · Bodyweight · 10 reps";"WU1 · +0 kg · 8 reps"
#;KG;REPS;RIR
1;+35;10;0
2;+35;9;1
3;+35;10;0
"4. Reverse Lunges · Dumbbells · 10 reps"
#;KG;REPS;RIR
1;10;10;1
2;10;10;1
3;10;10;0
"5. Standing Calf Raises · Machine · 12 reps";"WU1 · 47,5 kg · 8 reps"
#;KG;REPS;RIR
1;157,5;11;1
2;157,5;11;0
3;157,5;10;0
"6. Hanging Leg Raises · Bodyweight · 12 reps · 2 dropsets"
#;KG;REPS;RIR
1;+0;12;1
2;+0;12;1
3;+0;12;0

"Push · Day 1 · Week 4 · Push-Pull-Legs";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps<br>WU2 · 47,5 kg · 8 reps<br>WU3 · 77,5 kg · 6 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;102,5;6;0
3;100;6;0
`

// TestParseSessions verifies a multi-session export parses into sessions,
// exercises and working sets, with warmups dropped.
func TestParseSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	legs := sessions[0]
	if legs.Name != "Legs · Day 2 · Week 4 · Push-Pull-Legs" {
		t.Errorf("legs.Name = %q", legs.Name)
	}
	if legs.Duration != "1:02 hr" {
		t.Errorf("legs.Duration = %q", legs.Duration)
	}
	if len(legs.Exercises) != 6 {
		t.Fatalf("legs exercises = %d, want 6", len(legs.Exercises))
	}

	tests := []struct {
		name      string
		equipment string
		target    int
		sets      int
	}{
		{"Hack Squats", "Machine", 8, 3},
		{"Sumo Squats", "Smith machine", 10, 2},
		{"Hyperextensions on Roman Chair", "Bodyweight", 10, 3},
		{"Reverse Lunges", "Dumbbells", 10, 3},
		{"Standing Calf Raises", "Machine", 12, 3},
		{"Hanging Leg Raises", "Bodyweight", 12, 3},
	}
	for i, tt := range tests {
		ex := legs.Exercises[i]
		if ex.Name != tt.name {
			t.Errorf("exercise %d name = %q, want %q", i, ex.Name, tt.name)
		}
		if ex.Equipment != tt.equipment {
			t.Errorf("%s equipment = %q, want %q", tt.name, ex.Equipment, tt.equipment)
		}
		if ex.TargetReps != tt.target {
			t.Errorf("%s target reps = %d, want %d", tt.name, ex.TargetReps, tt.target)
		}
		if len(ex.Sets) != tt.sets {
			t.Errorf("%s sets = %d, want %d", tt.name, len(ex.Sets), tt.sets)
		}
	}

	calf := legs.Exercises[4].Sets[0]
	if calf.WeightKg != 157.5 || calf.Reps != 11 || calf.RIR != 1 {
		t.Errorf("calf set 1 = %+v, want 157.5kg x 11 @1", calf)
	}

	hyper := legs.Exercises[2].Sets[0]
	if !hyper.IsBodyweightPlus || hyper.WeightKg != 35 {
		t.Errorf("hyperextension set 1 = %+v, want bodyweight +35", hyper)
	}

	if sessions[1].Name != "Push · Day 1 · Week 4 · Push-Pull-Legs" {
		t.Errorf("push.Name = %q", sessions[1].Name)
	}
}

func TestLatest(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	latest, ok := Latest(sessions)
	if !ok {
		t.Fatal("Latest returned false")
	}
	if !strings.HasPrefix(latest.Name, "Legs") {
		t.Errorf("latest = %q, want the Legs session (2026-02-19)", latest.Name)
	}

	if _, ok := Latest(nil); ok {
		t.Error("Latest(nil) returned true")
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in         string
		want       float64
		bodyweight bool
	}{
		{"102,5", 102.5, false},
		{"115", 115, false},
		{"+35", 35, true},
		{"+0", 0, true},
	}
	for _, tt := range tests {
		got, bw := parseWeight(tt.in)
		if got != tt.want || bw != tt.bodyweight {
			t.Errorf("parseWeight(%q) = (%v, %v), want (%v, %v)", tt.in, got, bw, tt.want, tt.bodyweight)
		}
	}
}

// TestFractionalRIR verifies half-RIR values like "0,5".
func TestFractionalRIR(t *testing.T) {
	if got := parseDecimal("0,5"); got != 0.5 {
		t.Errorf("parseDecimal(0,5) = %f, want 0.5", got)
	}
}

// TestEmptyInput verifies that empty input returns no sessions without error.
func TestEmptyInput(t *testing.T) {
	sessions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
}

func TestSetWithoutExercise(t *testing.T) {
	in := `"Push";"2026-02-17 5:04 h";"1:12 hr"
1;100;6;0
`
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected error for set data without exercise")
	}
}
