package raw

import "testing"

func TestGetters(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  warn ")
	t.Setenv("LOG_CALLER", "YES")
	t.Setenv("LOG_PRETTY", "nope")
	t.Setenv("LOG_SAMPLE_EVERY", " 7 ")
	t.Setenv("LOG_BAD_INT", "12x")
	t.Setenv("LOG_NEG_INT", "-1")
	t.Setenv("LOG_BLANK", "   ")

	c := New().Prefix("LOG_")

	str := []struct{ key, def, want string }{
		{"LEVEL", "debug", "warn"},
		{"BLANK", "dflt", "dflt"},
		{"MISSING", "dflt", "dflt"},
	}
	for _, tc := range str {
		if got := c.Get(tc.key, tc.def); got != tc.want {
			t.Fatalf("Get(%s) = %q, want %q", tc.key, got, tc.want)
		}
	}

	bools := []struct {
		key       string
		def, want bool
	}{
		{"CALLER", false, true},
		{"PRETTY", true, false},
		{"MISSING", true, true},
	}
	for _, tc := range bools {
		if got := c.GetBool(tc.key, tc.def); got != tc.want {
			t.Fatalf("GetBool(%s) = %v, want %v", tc.key, got, tc.want)
		}
	}

	ints := []struct {
		key       string
		def, want int
	}{
		{"SAMPLE_EVERY", 0, 7},
		{"BAD_INT", 3, 3},
		{"NEG_INT", 4, 4},
		{"MISSING", 5, 5},
	}
	for _, tc := range ints {
		if got := c.GetInt(tc.key, tc.def); got != tc.want {
			t.Fatalf("GetInt(%s) = %d, want %d", tc.key, got, tc.want)
		}
	}
}

func TestPrefix_Nests(t *testing.T) {
	t.Setenv("LEVEL", "root")
	t.Setenv("LOG_LEVEL", "log")
	t.Setenv("LOG_HTTP_LEVEL", "nested")

	root := New()
	if root.Get("LEVEL", "") != "root" || root.Prefix("LOG_").Get("LEVEL", "") != "log" {
		t.Fatal("prefix lookup")
	}
	if got := root.Prefix("LOG_").Prefix("HTTP_").Get("LEVEL", ""); got != "nested" {
		t.Fatalf("nested = %q", got)
	}
}
