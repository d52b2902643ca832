// Package platform defines the client platforms documentation pages are
// scoped to.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

// Platform identifies a client SDK the documentation can be scoped to.
type Platform string

const (
	Android     Platform = "android"
	Angular     Platform = "angular"
	Flutter     Platform = "flutter"
	JavaScript  Platform = "javascript"
	NextJS      Platform = "nextjs"
	React       Platform = "react"
	ReactNative Platform = "react-native"
	Swift       Platform = "swift"
	Vue         Platform = "vue"
)

// ErrUnknownPlatform is returned when a value is not part of the taxonomy.
var ErrUnknownPlatform = errors.New("platform: unknown platform")

// Default is used when neither the request nor configuration names a platform.
const Default = React

var taxonomy = []Platform{
	Android,
	Angular,
	Flutter,
	JavaScript,
	NextJS,
	React,
	ReactNative,
	Swift,
	Vue,
}

var titles = map[Platform]string{
	Android:     "Android",
	Angular:     "Angular",
	Flutter:     "Flutter",
	JavaScript:  "JavaScript",
	NextJS:      "Next.js",
	React:       "React",
	ReactNative: "React Native",
	Swift:       "Swift",
	Vue:         "Vue",
}

// All returns the supported platforms in display order.
func All() []Platform {
	out := make([]Platform, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// Parse validates s against the taxonomy. Matching is exact: "React" is not "react".
func Parse(s string) (Platform, error) {
	p := Platform(strings.TrimSpace(s))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// Valid reports whether p is part of the taxonomy.
func (p Platform) Valid() bool {
	_, ok := titles[p]
	return ok
}

// Title returns the display name, or the raw identifier for unknown values.
func (p Platform) Title() string {
	if t, ok := titles[p]; ok {
		return t
	}
	return string(p)
}

func (p Platform) String() string { return string(p) }

// Contains is an exact membership test.
func Contains(set []Platform, p Platform) bool {
	for _, candidate := range set {
		if candidate == p {
			return true
		}
	}
	return false
}
