package interp

import "testing"

func TestLineScannerSplit(t *testing.T) {
	const (
		dot  = 5
		last = 26
	)
	tests := []struct {
		raw    string
		first  string
		second string
		rest   string
	}{
		{raw: "", first: "", second: "", rest: ""},
		{raw: "p", first: "", second: "", rest: "p"},
		{raw: "5", first: "5", second: "", rest: ""},
		{raw: "12", first: "12", second: "", rest: ""},
		{raw: "1,5p", first: "1", second: "5", rest: "p"},
		{raw: ",p", first: "1", second: "26", rest: "p"},
		{raw: ",", first: "1", second: "26", rest: ""},
		{raw: "%p", first: "1", second: "26", rest: "p"},
		{raw: "%s/a/b/g", first: "1", second: "26", rest: "s/a/b/g"},
		{raw: ";p", first: "5", second: "26", rest: "p"},
		{raw: ".p", first: ".", second: "", rest: "p"},
		{raw: "$", first: "$", second: "", rest: ""},
		{raw: ".,$n", first: ".", second: "$", rest: "n"},
		{raw: "+2p", first: "+2", second: "", rest: "p"},
		{raw: "-", first: "-", second: "", rest: ""},
		{raw: "^2,^1p", first: "^2", second: "^1", rest: "p"},
		{raw: ".,+5p", first: ".", second: "+5", rest: "p"},
		{raw: "/foo/", first: "/foo/", second: "/foo/", rest: ""},
		{raw: "?bar?p", first: "?bar?", second: "?bar?", rest: "p"},
		{raw: "/a/,/b/p", first: "/a/", second: "/b/", rest: "p"},
		{raw: "/a,b/p", first: "/a,b/", second: "/a,b/", rest: "p"},
		{raw: "'a", first: "'a", second: "'a", rest: ""},
		{raw: "'a,'bp", first: "'a", second: "'b", rest: "p"},
		{raw: "s/a/b/", first: "", second: "", rest: "s/a/b/"},
		{raw: "g/re/d", first: "", second: "", rest: "g/re/d"},
		{raw: "ka", first: "", second: "", rest: "ka"},
		{raw: "3,1m0", first: "3", second: "1", rest: "m0"},
		{raw: "1,2,3p", first: "1", second: "2", rest: ",3p"},
		{raw: "!ls", first: "", second: "", rest: "!ls"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			first, second, rest := newLineScanner(dot, last).split(tt.raw)
			if first != tt.first || second != tt.second || rest != tt.rest {
				t.Errorf("split(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.raw, first, second, rest, tt.first, tt.second, tt.rest)
			}
		})
	}
}

func TestLineScannerEmptyBuffer(t *testing.T) {
	// by convention an empty buffer still resolves % to (1,1)
	first, second, rest := newLineScanner(0, 1).split("%p")
	if first != "1" || second != "1" || rest != "p" {
		t.Errorf("split(%%p) = (%q, %q, %q), want (1, 1, p)", first, second, rest)
	}
}
