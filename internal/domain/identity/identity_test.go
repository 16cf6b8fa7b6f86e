package identity

import (
	"errors"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		userID  string
		anonID  string
		want    Identity
		wantErr error
	}{
		{name: "user wins over anonymous", userID: "u-1", anonID: "abc", want: User("u-1")},
		{name: "user only", userID: "u-1", want: User("u-1")},
		{name: "anonymous only", anonID: "abc", want: Anonymous("abc")},
		{name: "anonymous trimmed", anonID: "  dev_01-x ", want: Anonymous("dev_01-x")},
		{name: "nothing", want: None},
		{name: "blank header", anonID: "   ", want: None},
		{name: "malformed anonymous", anonID: "abc def", wantErr: ErrInvalidAnonymousID},
		{name: "too long anonymous", anonID: strings.Repeat("a", MaxAnonymousIDLen+1), wantErr: ErrInvalidAnonymousID},
		{name: "malformed anonymous ignored when user present", userID: "u-1", anonID: "%%%", want: User("u-1")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.userID, tc.anonID)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestIdentity_Predicates(t *testing.T) {
	if !None.IsNone() || None.String() != "none" {
		t.Fatalf("unexpected none identity")
	}
	if !User("u").IsUser() || User("u").IsAnonymous() {
		t.Fatalf("unexpected user predicates")
	}
	if Anonymous("a").String() != "anonymous:a" {
		t.Fatalf("unexpected anonymous string %q", Anonymous("a").String())
	}
	if ValidAnonymousID(strings.Repeat("z", MaxAnonymousIDLen)) != true {
		t.Fatalf("max length id must be valid")
	}
}
