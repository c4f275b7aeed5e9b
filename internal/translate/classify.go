package translate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	forecastPattern  = regexp.MustCompile(`\b(forecast|predict|projection|outlook|next year|next quarter|coming months|will be|expected|estimate|trend)\b`)
	plainPattern     = regexp.MustCompile(`\b(list|show|what are|who are|how many|history|past|previous|current|today)\b`)
	ambiguousPattern = regexp.MustCompile(`\b(look like|will be|what will|how will|going to be|should we expect)\b`)

	monthsPattern   = regexp.MustCompile(`(\d+)\s+month`)
	yearsPattern    = regexp.MustCompile(`(\d+)\s+year`)
	quartersPattern = regexp.MustCompile(`(\d+)\s+quarter`)
	nextNPattern    = regexp.MustCompile(`next\s+(\d+)\b`)
)

// DefaultHorizon is the forecast horizon, in months, assumed when the
// question does not name one.
const DefaultHorizon = 6

// Classify decides whether a question asks for a forecast or a plain
// relational answer using keyword heuristics. A clear forecast phrase
// wins, then a clear plain phrase; everything else defaults to plain.
func Classify(question string) Kind {
	lowered := strings.ToLower(question)
	if forecastPattern.MatchString(lowered) {
		return KindForecast
	}
	if plainPattern.MatchString(lowered) {
		return KindPlain
	}
	return KindPlain
}

// IsAmbiguous reports whether the question contains phrasing that the
// keyword heuristics cannot settle, making it worth a model tie-break.
func IsAmbiguous(question string) bool {
	return ambiguousPattern.MatchString(strings.ToLower(question))
}

// ClearMatch reports whether either keyword list matched, meaning the
// heuristic answer is trustworthy without a model tie-break.
func ClearMatch(question string) bool {
	lowered := strings.ToLower(question)
	return forecastPattern.MatchString(lowered) || plainPattern.MatchString(lowered)
}

// ExtractHorizon reads the forecast horizon, in months, from the
// question: "next 6 months" -> 6, "2 years" -> 24, "3 quarters" -> 9,
// bare "next 4" -> 4. Falls back to DefaultHorizon.
func ExtractHorizon(question string) int {
	lowered := strings.ToLower(question)
	if m := monthsPattern.FindStringSubmatch(lowered); m != nil {
		return mustAtoi(m[1])
	}
	if m := yearsPattern.FindStringSubmatch(lowered); m != nil {
		return mustAtoi(m[1]) * 12
	}
	if m := quartersPattern.FindStringSubmatch(lowered); m != nil {
		return mustAtoi(m[1]) * 3
	}
	if m := nextNPattern.FindStringSubmatch(lowered); m != nil {
		return mustAtoi(m[1])
	}
	return DefaultHorizon
}

func mustAtoi(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return DefaultHorizon
	}
	return parsed
}
