package auth

import (
	"net/url"
	"strconv"
)

// FragmentKind classifies a redirect URL fragment.
type FragmentKind int

const (
	FragmentAbsent FragmentKind = iota
	FragmentToken
	FragmentDenied
	FragmentMalformed
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentAbsent:
		return "absent"
	case FragmentToken:
		return "token"
	case FragmentDenied:
		return "denied"
	default:
		return "malformed"
	}
}

// Fragment is the parsed form of an implicit grant redirect fragment.
type Fragment struct {
	Kind        FragmentKind
	AccessToken string
	TokenType   string
	ExpiresIn   int // seconds; 0 if absent or unparsable
	State       string
	Error       string // set for FragmentDenied
}

// ParseFragment parses the raw (still escaped) fragment of a redirect URL,
// without the leading '#'. It never fails: unusable input yields
// FragmentMalformed.
func ParseFragment(raw string) Fragment {
	if raw == "" {
		return Fragment{Kind: FragmentAbsent}
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return Fragment{Kind: FragmentMalformed}
	}

	if errMsg := values.Get("error"); errMsg != "" {
		return Fragment{
			Kind:  FragmentDenied,
			Error: errMsg,
			State: values.Get("state"),
		}
	}

	token := values.Get("access_token")
	if token == "" {
		return Fragment{Kind: FragmentMalformed}
	}

	expiresIn, _ := strconv.Atoi(values.Get("expires_in"))

	return Fragment{
		Kind:        FragmentToken,
		AccessToken: token,
		TokenType:   values.Get("token_type"),
		ExpiresIn:   expiresIn,
		State:       values.Get("state"),
	}
}
