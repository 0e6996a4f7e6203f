package progression

// Validate checks a submission against the problem it answers.
//
// Every hidden index gets a flag: true iff its text parses and equals
// the generated term exactly. Unparseable or missing text marks that
// index wrong and never aborts the check. The kind must match and the
// reason text must parse to exactly Problem.Reason.
//
// No rounding happens here. Problem.Full was rounded by Round15 at
// generation time and typed decimals parse to the same float64, so ==
// is the right comparison. Re-rounding the parsed input would accept
// answers that differ from the displayed value.
func Validate(p *Problem, s Submission) Outcome {
	out := Outcome{
		Terms: make(map[int]bool, len(p.Hidden)),
	}

	allTerms := true
	for _, i := range p.Hidden {
		ok := matches(s.Terms[i], p.Full[i])
		out.Terms[i] = ok
		if !ok {
			allTerms = false
		}
	}

	out.KindCorrect = s.Kind != KindUnset && s.Kind == p.Kind
	out.ReasonCorrect = matches(s.Reason, p.Reason)
	out.Correct = allTerms && out.KindCorrect && out.ReasonCorrect
	return out
}

func matches(text string, want float64) bool {
	got, err := ParseNumber(text)
	if err != nil {
		return false
	}
	return got == want
}

// SubmissionFor returns the submission a player who knows the answer
// would enter: every hidden term, the kind and the reason as text.
func SubmissionFor(p *Problem) Submission {
	terms := make(map[int]string, len(p.Hidden))
	for _, i := range p.Hidden {
		terms[i] = FormatNumber(p.Full[i])
	}
	return Submission{
		Terms:  terms,
		Kind:   p.Kind,
		Reason: FormatNumber(p.Reason),
	}
}
