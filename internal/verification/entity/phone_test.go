package entity

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "PlainSubscriber", in: "9876543210", want: "9876543210"},
		{name: "CountryCodeStripped", in: "+919876543210", want: "9876543210"},
		{name: "SeparatorsStripped", in: "+91 98765-43210", want: "9876543210"},
		{name: "ParenthesesStripped", in: "(987) 654-3210", want: "9876543210"},
		{name: "ShortNumberKept", in: "12345678", want: "12345678"},
		{name: "LettersDropped", in: "98765x43210", want: "9876543210"},
		{name: "Empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizePhone(tc.in); got != tc.want {
				t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizePhoneSameSubscriber(t *testing.T) {
	// Different ways of writing the same number must collapse to one form.
	forms := []string{"9876543210", "+919876543210", "091 98765 43210", "98765-43210"}
	want := NormalizePhone(forms[0])

	for _, f := range forms {
		if got := NormalizePhone(f); got != want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", f, got, want)
		}
	}
}
