package commentstrip

import "testing"

func TestStrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no comment", "class Foo.", "class Foo."},
		{"trailing comment", "class Foo. # a note", "class Foo."},
		{"whole-line comment", "# just a comment", ""},
		{"trailing whitespace after strip", "class Foo.   # trailing", "class Foo."},
		{"multi-line", "class Foo. # c1\nclass Bar. # c2", "class Foo.\nclass Bar."},
		{"hash inside nothing special", "class Foo.#c", "class Foo."},
		{"empty input", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Strip(c.in)
			if got != c.want {
				t.Errorf("Strip(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
