package shell

import "testing"

func TestStripStyling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain-text-untouched",
			input: "hello",
			want:  "hello",
		},
		{
			name:  "color-removed",
			input: "\x1b[31mred\x1b[0m plain",
			want:  "red plain",
		},
		{
			name:  "multi-param-sgr",
			input: "\x1b[1;32;40mbold green\x1b[m",
			want:  "bold green",
		},
		{
			name:  "erase-line-removed",
			input: "progress\x1b[K done",
			want:  "progress done",
		},
		{
			name:  "cursor-addressing-kept",
			input: "\x1b[2Jcleared\x1b[1;1H",
			want:  "\x1b[2Jcleared\x1b[1;1H",
		},
		{
			name:  "mode-switch-kept",
			input: "\x1b[?1049hfull screen",
			want:  "\x1b[?1049hfull screen",
		},
		{
			name:  "incomplete-sequence-kept",
			input: "tail\x1b[",
			want:  "tail\x1b[",
		},
		{
			name:  "bare-escape-kept",
			input: "a\x1bb",
			want:  "a\x1bb",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := stripStyling(test.input); got != test.want {
				t.Fatalf("stripStyling(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}
