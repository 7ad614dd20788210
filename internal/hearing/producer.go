// Package hearing picks one word producer at startup from the configured
// profile and reports what it says.
package hearing

import (
	"errors"
	"fmt"
	"strings"
)

// Profiles select a WordProducer.
const (
	ProfileDefault      = ""
	ProfileLaurel       = "laurel"
	ProfileYanny        = "yanny"
	ProfileExternalized = "externalized"
)

var (
	ErrUnknownProfile = errors.New("unknown profile")
	ErrWordRequired   = errors.New("say.word is required for the externalized profile")
)

// WordProducer yields the word that is heard.
type WordProducer interface {
	Word() string
}

// Laurel always says "Laurel". It is the default producer.
type Laurel struct{}

func (Laurel) Word() string { return "Laurel" }

// Yanny always says "Yanny".
type Yanny struct{}

func (Yanny) Word() string { return "Yanny" }

// Properties says the word supplied by configuration.
type Properties struct {
	word string
}

func NewProperties(word string) Properties {
	return Properties{word: word}
}

func (p Properties) Word() string { return p.word }

// Profiles lists the accepted profile names, default first.
func Profiles() []string {
	return []string{ProfileLaurel, ProfileYanny, ProfileExternalized}
}

// NewProducer chooses the producer for profile. Matching ignores case and
// surrounding space; the empty profile means Laurel.
func NewProducer(profile, word string) (WordProducer, error) {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case ProfileDefault, ProfileLaurel:
		return Laurel{}, nil
	case ProfileYanny:
		return Yanny{}, nil
	case ProfileExternalized:
		if strings.TrimSpace(word) == "" {
			return nil, ErrWordRequired
		}
		return NewProperties(word), nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownProfile, profile, strings.Join(Profiles(), ", "))
	}
}
