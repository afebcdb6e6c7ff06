package homework

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestParseVerdict(t *testing.T) {
	for _, v := range Verdicts {
		got, err := ParseVerdict(string(v))
		if err != nil || got != v {
			t.Fatalf("ParseVerdict(%q) = (%q, %v)", v, got, err)
		}
		if v.Message() == "" {
			t.Fatalf("verdict %q has no message", v)
		}
	}

	if _, err := ParseVerdict("unknown"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("ParseVerdict(unknown) error = %v, want ErrUnknownStatus", err)
	}
	if Verdict("unknown").Message() != "" {
		t.Fatal("unknown verdict should have no message")
	}
}

func TestErrorMessageCarriesContext(t *testing.T) {
	err := &Error{
		Kind:       KindAPI,
		Op:         "FetchSubmissions",
		Endpoint:   "https://example.test/api/",
		Params:     url.Values{"from_date": {"100"}},
		StatusCode: 500,
		Err:        errors.New("unexpected status 500 Internal Server Error"),
	}
	msg := err.Error()
	for _, want := range []string{"ApiError", "FetchSubmissions", "https://example.test/api/", "from_date=100", "status=500"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), &Error{Kind: KindResponse})
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "configuration", err: &Error{Kind: KindConfiguration}, want: KindConfiguration},
		{name: "api", err: &Error{Kind: KindAPI}, want: KindAPI},
		{name: "wrapped response", err: wrapped, want: KindResponse},
		{name: "plain", err: errors.New("boom"), want: KindUnknown},
		{name: "nil", err: nil, want: KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}
