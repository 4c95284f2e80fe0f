package color

import "testing"

func TestGroupOf(t *testing.T) {
	tests := []struct {
		color string
		group string
	}{
		{"Red", "Red"},
		{"Maroon", "Red"},
		{"Navy", "Blue"},
		{"DenimBlue", "Blue"},
		{"HotPink", "Pink"},
		{"Magenta", "Pink"},
		{"Lavender", "Purple"},
		{"Gold", "Yellow"},
		{"Olive", "Green"},
		{"Coral", "Orange"},
		{"Tan", "Brown"},
		{"Black", "Neutrals"},
		{"Beige", "Neutrals"},
		{"Turquoise", ""}, // not in any group
		{"", ""},
	}

	for _, tt := range tests {
		if got := GroupOf(tt.color); got != tt.group {
			t.Errorf("GroupOf(%q) = %q, want %q", tt.color, got, tt.group)
		}
	}
}

func TestGroupsMatchPalette(t *testing.T) {
	// Every color referenced by a group must exist in the palette, so the
	// detector can actually produce it.
	names := make(map[string]bool, len(Palette))
	for _, p := range Palette {
		names[p.Name] = true
	}

	for _, group := range groupOrder {
		for _, c := range groups[group] {
			if !names[c] {
				t.Errorf("group %s references %q, which is not in the palette", group, c)
			}
		}
	}
}

func TestValidateCombination(t *testing.T) {
	tests := []struct {
		name   string
		colors []string
		valid  bool
	}{
		{"empty", nil, true},
		{"single color", []string{"Red"}, true},
		{"same group", []string{"Red", "Crimson"}, true},
		{"compatible groups", []string{"Red", "Navy", "White"}, true},
		{"red and pink clash", []string{"Red", "Pink"}, false},
		{"purple and green clash", []string{"Lavender", "Olive"}, false},
		{"green and orange clash", []string{"ForestGreen", "Coral"}, false},
		{"neutrals go with anything", []string{"Black", "White", "Navy", "Crimson"}, true},
		{"ungrouped colors impose no constraint", []string{"Turquoise", "Red", "Navy"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, reason := ValidateCombination(tt.colors)
			if valid != tt.valid {
				t.Errorf("ValidateCombination(%v) = %v (%q), want %v", tt.colors, valid, reason, tt.valid)
			}
			if !valid && reason == "" {
				t.Error("invalid combination must carry a reason")
			}
		})
	}
}

func TestValidateCombinationSymmetric(t *testing.T) {
	a, _ := ValidateCombination([]string{"Red", "Pink"})
	b, _ := ValidateCombination([]string{"Pink", "Red"})
	if a != b {
		t.Errorf("validation is order-dependent: %v vs %v", a, b)
	}
}

func TestValidateCombinationFirstConflictReported(t *testing.T) {
	// Red is encountered before Pink and Brown; the Red/Pink pair comes up
	// first and is the one reported.
	valid, reason := ValidateCombination([]string{"Red", "Pink", "Tan", "Gray"})
	if valid {
		t.Fatal("expected invalid combination")
	}
	want := "Conflict between Red and Pink colors"
	if reason != want {
		t.Errorf("reason = %q, want %q", reason, want)
	}
}

func TestClosest(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    string
	}{
		{255, 0, 0, "Red"},
		{0, 0, 0, "Black"},
		{255, 255, 255, "White"},
		{0, 0, 255, "Blue"},
		{0, 2, 250, "Blue"}, // near match
		{128, 128, 128, "Gray"},
		{0, 0, 120, "Navy"}, // dark shade resolves within its group
	}

	for _, tt := range tests {
		if got := Closest(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("Closest(%d, %d, %d) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}
