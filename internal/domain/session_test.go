package domain

import "testing"

func TestRenderDisplayable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		render Render
		want   bool
	}{
		{"https success", Render{Succeeded: true, ImageURL: "https://img.example.com/a.png"}, true},
		{"http success", Render{Succeeded: true, ImageURL: "http://img.example.com/a.png"}, true},
		{"failed attempt", Render{Succeeded: false, ImageURL: "https://img.example.com/a.png"}, false},
		{"empty url", Render{Succeeded: true}, false},
		{"bad scheme", Render{Succeeded: true, ImageURL: "javascript:alert(1)"}, false},
		{"no host", Render{Succeeded: true, ImageURL: "https://"}, false},
		{"not a url", Render{Succeeded: true, ImageURL: "plain words"}, false},
	}

	for _, tc := range cases {
		if got := tc.render.Displayable(); got != tc.want {
			t.Errorf("%s: Displayable() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestProfileCompleteness(t *testing.T) {
	t.Parallel()

	var p PatientProfile
	if p.Complete() {
		t.Fatal("empty profile reported complete")
	}
	for i, attr := range Attributes {
		p.Set(attr, "value")
		wantComplete := i == len(Attributes)-1
		if p.Complete() != wantComplete {
			t.Fatalf("after setting %d attributes Complete() = %v", i+1, p.Complete())
		}
	}
	for _, attr := range Attributes {
		if p.Get(attr) != "value" {
			t.Fatalf("attribute %s = %q", attr, p.Get(attr))
		}
	}
}
