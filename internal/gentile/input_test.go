package gentile

import (
	"reflect"
	"testing"
)

func Test_inputParser_guessOutput(t *testing.T) {
	p := inputParser{}

	tests := []struct {
		in   string
		want string
	}{
		{"scored.tsv", "scored.guides.tsv"},
		{"data/EMX1.scored.txt", "data/EMX1.scored.guides.tsv"},
		{"noext", "noext.guides.tsv"},
	}

	for _, tt := range tests {
		if got := p.guessOutput(tt.in); got != tt.want {
			t.Errorf("guessOutput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func Test_inputParser_parseBanned(t *testing.T) {
	p := inputParser{}

	got := p.parseBanned(" GGTCTC, GAGACC ,,")
	if !reflect.DeepEqual(got, []string{"GGTCTC", "GAGACC"}) {
		t.Errorf("parseBanned() = %v", got)
	}

	if got := p.parseBanned(""); got != nil {
		t.Errorf("parseBanned(\"\") = %v, want nil", got)
	}
}
