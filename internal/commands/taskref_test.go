package commands

import (
	"testing"

	"planify/internal/service"
)

func TestParseTaskNumber(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr string
	}{
		{name: "single digit", args: []string{"5"}, want: 5},
		{name: "multi digit", args: []string{"123"}, want: 123},
		{name: "zero parses", args: []string{"0"}, want: 0},
		{name: "missing", args: nil, wantErr: "task number required"},
		{name: "letter", args: []string{"a1"}, wantErr: "invalid task number: a1"},
		{name: "negative", args: []string{"-1"}, wantErr: "invalid task number: -1"},
		{name: "non-ascii digit", args: []string{"١"}, wantErr: "invalid task number: ١"},
		{name: "extra arg", args: []string{"1", "2"}, wantErr: "unexpected argument: 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskNumber(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTaskAt(t *testing.T) {
	tasks := []service.Task{{ID: "a"}, {ID: "b"}}

	if task, err := taskAt(tasks, 2); err != nil || task.ID != "b" {
		t.Errorf("taskAt(2) = %+v, %v", task, err)
	}
	for _, num := range []int{0, 3} {
		if _, err := taskAt(tasks, num); err == nil {
			t.Errorf("taskAt(%d): expected out of range", num)
		}
	}
}
