package main

import "testing"

func TestSplitDashDash(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantHead []string
		wantTail []string
	}{
		{
			name:     "no separator",
			args:     []string{"-P", "-V"},
			wantHead: []string{"-P", "-V"},
			wantTail: nil,
		},
		{
			name:     "separator with tail",
			args:     []string{"-P", "--", "--level", "design"},
			wantHead: []string{"-P"},
			wantTail: []string{"--level", "design"},
		},
		{
			name:     "separator first",
			args:     []string{"--", "-P"},
			wantHead: []string{},
			wantTail: []string{"-P"},
		},
		{
			name:     "only separator",
			args:     []string{"--"},
			wantHead: []string{},
			wantTail: []string{},
		},
		{
			name:     "second separator is preserved in tail",
			args:     []string{"a", "--", "b", "--", "c"},
			wantHead: []string{"a"},
			wantTail: []string{"b", "--", "c"},
		},
		{
			name:     "tail preserved byte for byte",
			args:     []string{"--", "", " spaced ", "--flag=v a l"},
			wantHead: []string{},
			wantTail: []string{"", " spaced ", "--flag=v a l"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, tail := splitDashDash(tt.args)

			if len(head) != len(tt.wantHead) {
				t.Fatalf("head = %v, want %v", head, tt.wantHead)
			}
			for i := range tt.wantHead {
				if head[i] != tt.wantHead[i] {
					t.Errorf("head[%d] = %q, want %q", i, head[i], tt.wantHead[i])
				}
			}

			if len(tail) != len(tt.wantTail) {
				t.Fatalf("tail = %v, want %v", tail, tt.wantTail)
			}
			for i := range tt.wantTail {
				if tail[i] != tt.wantTail[i] {
					t.Errorf("tail[%d] = %q, want %q", i, tail[i], tt.wantTail[i])
				}
			}
		})
	}
}
