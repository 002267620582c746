package xmlwriter

import "testing"

func TestWriterEscapesTextAndAttributes(t *testing.T) {
	w := New()
	w.Start("root", A("name", `a"b'c<&>`))
	w.Element("t", `x & y < z > "q" 'p'`)
	w.Empty("leaf", AInt("n", 3), AFloat("v", 0.5))
	w.End("root")
	got := string(w.Bytes())

	expected := `<root name="a&quot;b&apos;c&lt;&amp;&gt;">` +
		`<t>x &amp; y &lt; z &gt; &#34;q&#34; &#39;p&#39;</t>` +
		`<leaf n="3" v="0.5"/></root>`
	if got != expected {
		t.Errorf("Unexpected output:\n got: %s\nwant: %s", got, expected)
	}
}

func TestDeclaration(t *testing.T) {
	w := New()
	w.Declaration()
	w.Empty("a")
	got := string(w.Bytes())
	if got != Header+"<a/>" {
		t.Errorf("Unexpected output: %q", got)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{10, "10"},
		{-2.5, "-2.5"},
		{0.1, "0.1"},
		{1e20, "1E+20"},
		{123456789, "123456789"},
		{0.00001, "1E-05"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.input); got != tt.expected {
			t.Errorf("FormatFloat(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestEscapeControl(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"tab\tand\nnewline", "tab\tand\nnewline"},
		{"bell\x07", "bell_x0007_"},
		{"_x0041_", "_x005F_x0041_"},
		{"a_x00e9_b", "a_x005F_x00e9_b"},
		{"_x004_", "_x004_"},
		{"_xZZZZ_", "_xZZZZ_"},
		{"_x", "_x"},
	}
	for _, test := range tests {
		if got := EscapeControl(test.input); got != test.expected {
			t.Errorf("EscapeControl(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestEscapeAttrReplacesInvalidCharacters(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Sheet1", "Sheet1"},
		{"bad\x01name", "bad�name"},
		{"bad\xffname", "bad�name"},
		{"über", "über"},
	}
	for _, test := range tests {
		if got := EscapeAttr(test.input); got != test.expected {
			t.Errorf("EscapeAttr(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}
