package lang

import (
	"testing"
)

func TestValue_Canonical(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		text    string
		literal string
	}{
		{"hex lower", HexValue("0xff"), "0XFF", "0XFF"},
		{"hex leading zeros", HexValue("0x001f"), "0X1F", "0X1F"},
		{"hex zero", HexValue("0x0"), "0X0", "0X0"},
		{"int leading zeros", IntValue("007"), "7", "7"},
		{"int negative", IntValue("-007"), "-7", "-7"},
		{"int large", IntValue("123456789012345678901234567890"), "123456789012345678901234567890", "123456789012345678901234567890"},
		{"int malformed kept", IntValue("1x"), "1x", "1x"},
		{"state", StateValue("m"), "m", "m"},
		{"string", StringValue("a b"), "a b", `"a b"`},
		{"string newline", StringValue("a\nb"), "a\nb", `"a\nb"`},
		{"string empty", StringValue(""), "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}

			if got := tt.value.Literal(); got != tt.literal {
				t.Errorf("Literal() = %q, want %q", got, tt.literal)
			}
		})
	}
}

func TestAssignmentLine(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{StateValue("n"), "# NAME is not set"},
		{StateValue("y"), "NAME=y"},
		{StringValue("n"), `NAME="n"`},
		{IntValue("10"), "NAME=10"},
		{HexValue("0xabc"), "NAME=0XABC"},
	}

	for _, tt := range tests {
		if got := AssignmentLine("NAME", tt.value); got != tt.want {
			t.Errorf("AssignmentLine(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatter_Format(t *testing.T) {
	pos := func(line int) Pos { return Pos{File: "/base/sub/a.conf", Line: line} }

	entries := []Entry{
		&CommentEntry{Text: " hello"},
		&CommentEntry{Text: "# hidden"},
		&CommentEntry{Text: ""},
		&Variable{Name: VarBase, History: []History{{Value: StringValue("/base"), Pos: pos(1)}}},
		&Variable{Name: "A", History: []History{
			{Value: StateValue("y"), Pos: pos(3)},
			{Value: StringValue("x"), Pos: Pos{File: "/base/b.conf", Line: 4}},
			{Value: StateValue("n"), Pos: pos(7)},
		}},
		&Variable{Name: "S", History: []History{{Value: StringValue("a\nb"), Pos: pos(8)}}},
		&Variable{Name: "H", History: []History{{Value: HexValue("0x1f"), Pos: pos(9)}}},
		&Variable{Name: "I", History: []History{
			{Value: IntValue("1"), Pos: Pos{File: CommandLine, Line: 1}},
			{Value: IntValue("10"), Pos: pos(10)},
		}},
	}

	tests := []struct {
		name      string
		formatter Formatter
		want      string
	}{
		{
			name:      "history",
			formatter: Formatter{BaseDir: "/base"},
			want: "# hello\n" +
				"#\n" +
				"\n" +
				"# Previously y on sub/a.conf:3\n" +
				"# Previously \"x\" on b.conf:4\n" +
				"# A is not set\n" +
				"S=\"a\\nb\"\n" +
				"H=0X1F\n" +
				"\n" +
				"# Previously 1 on <command-line>:1\n" +
				"I=10\n",
		},
		{
			name:      "absolute paths without base",
			formatter: Formatter{},
			want: "# hello\n" +
				"#\n" +
				"\n" +
				"# Previously y on /base/sub/a.conf:3\n" +
				"# Previously \"x\" on /base/b.conf:4\n" +
				"# A is not set\n" +
				"S=\"a\\nb\"\n" +
				"H=0X1F\n" +
				"\n" +
				"# Previously 1 on <command-line>:1\n" +
				"I=10\n",
		},
		{
			name:      "strip history",
			formatter: Formatter{BaseDir: "/base", StripHistory: true},
			want: "# hello\n" +
				"#\n" +
				"# A is not set\n" +
				"S=\"a\\nb\"\n" +
				"H=0X1F\n" +
				"I=10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.formatter.String(entries); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatter_Empty(t *testing.T) {
	if got := (Formatter{}).String(nil); got != "" {
		t.Errorf("String(nil) = %q, want empty", got)
	}
}
