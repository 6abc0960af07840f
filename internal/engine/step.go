package engine

import (
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Func is the calling convention for step callables.
//
// A callable receives the previous step's output Data and returns either a
// declared outcome (a State built with Success or Failure) or an error. A
// returned error - or a panic - is a fault: the runner's fault barrier
// converts it into a failure State instead of letting it escape the run.
type Func func(Data) (State, error)

// Step is an immutable, named, described unit of work.
//
// Steps are value types: construction and the With* methods produce new
// values and never mutate an existing Step. Title and Description default to
// the empty string.
type Step struct {
	fn          Func
	title       string
	description string
}

// NewStep creates a Step from a callable, inferring its title from the
// function's identifier: the identifier is tokenized on underscores and
// camelCase boundaries, joined with spaces, given a capitalized first letter
// and a trailing period. Anonymous functions have no usable identifier and
// get an empty title.
func NewStep(fn Func) Step {
	return Step{fn: fn, title: titleFromFunc(fn)}
}

// TitledStep returns a factory that wraps a callable into a Step carrying the
// given explicit title. This is the constructor to use when the function
// identifier would make a poor label, e.g. parameterized step builders:
//
//	func add(n int) engine.Step {
//		return engine.TitledStep(fmt.Sprintf("Add %d.", n))(func(d engine.Data) (engine.State, error) {
//			...
//		})
//	}
func TitledStep(title string) func(Func) Step {
	title = norm.NFC.String(title)
	return func(fn Func) Step {
		return Step{fn: fn, title: title}
	}
}

// Title returns the step's human label.
func (s Step) Title() string { return s.title }

// Description returns the step's free-text description.
func (s Step) Description() string { return s.description }

// WithTitle returns a copy of the Step with the given title.
func (s Step) WithTitle(title string) Step {
	s.title = norm.NFC.String(title)
	return s
}

// WithDescription returns a copy of the Step with the given description.
func (s Step) WithDescription(description string) Step {
	s.description = description
	return s
}

// titleFromFunc derives a title from a callable's runtime identifier.
// Returns "" for nil or anonymous functions.
func titleFromFunc(fn Func) string {
	if fn == nil {
		return ""
	}
	pc := reflect.ValueOf(fn).Pointer()
	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return ""
	}
	return titleFromName(rf.Name())
}

// titleFromName converts a fully qualified function name into a title.
//
// "github.com/acme/app/steps.addTwoNumbers" becomes "Add two numbers.",
// "main.check_balance" becomes "Check balance.". Closure names such as
// "pkg.Build.func1" carry no usable identifier and yield "".
func titleFromName(name string) string {
	// Drop the package path, then take the last dotted segment. Method
	// values carry a "-fm" suffix.
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if name == "" || isAnonymousName(name) {
		return ""
	}

	words := tokenizeIdent(name)
	if len(words) == 0 {
		return ""
	}
	title := strings.Join(words, " ")
	runes := []rune(title)
	runes[0] = unicode.ToUpper(runes[0])
	return norm.NFC.String(string(runes) + ".")
}

// isAnonymousName reports whether the final name segment belongs to a
// closure ("func1", or a bare index like "2" from nested closures).
func isAnonymousName(name string) bool {
	trimmed := strings.TrimPrefix(name, "func")
	if trimmed == name && !isDigits(name) {
		return false
	}
	return isDigits(trimmed) || isDigits(name)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tokenizeIdent splits an identifier on underscores and camelCase
// boundaries, lowercasing every token. Acronym runs stay together:
// "parseHTTPResponse" yields ["parse", "http", "response"].
func tokenizeIdent(ident string) []string {
	var words []string
	for _, part := range strings.Split(ident, "_") {
		words = append(words, splitCamel(part)...)
	}
	return words
}

func splitCamel(s string) []string {
	var words []string
	runes := []rune(s)
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		switch {
		case unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			// lower/digit -> Upper starts a word: "addTwo".
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			// Last upper of an acronym run starts the next word: "HTTPServer".
			boundary = true
		}
		if boundary {
			words = append(words, strings.ToLower(string(runes[start:i])))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, strings.ToLower(string(runes[start:])))
	}
	return words
}
