package app

import "testing"

func TestNormalizeDBURL(t *testing.T) {
	t.Run("appends parameter when enabled", func(t *testing.T) {
		out := normalizeDBURL("postgres://u:p@localhost:5432/portal?sslmode=disable", true)
		if out != "postgres://u:p@localhost:5432/portal?disable_prepared_binary_result=yes&sslmode=disable" {
			t.Fatalf("unexpected url: %s", out)
		}
	})

	t.Run("keeps explicit parameter", func(t *testing.T) {
		in := "postgres://u:p@localhost:5432/portal?disable_prepared_binary_result=no"
		if out := normalizeDBURL(in, true); out != in {
			t.Fatalf("unexpected url: %s", out)
		}
	})

	t.Run("untouched when disabled", func(t *testing.T) {
		in := "postgres://u:p@localhost:5432/portal"
		if out := normalizeDBURL(in, false); out != in {
			t.Fatalf("unexpected url: %s", out)
		}
	})
}

func TestDBNameFromURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"url form", "postgres://u:p@localhost:5432/portal?sslmode=disable", "portal"},
		{"dsn form", "host=localhost dbname=portal sslmode=disable", "portal"},
		{"quoted dsn", `host=localhost dbname="portal"`, "portal"},
		{"missing", "postgres://u:p@localhost:5432/", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dbNameFromURL(tc.in); got != tc.want {
				t.Fatalf("dbNameFromURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
