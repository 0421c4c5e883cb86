package genderrender

import "sort"

// DefaultID is the id given to a single unnamed person when the template names nobody.
const DefaultID = "usr"

// resolveIDs matches the ids used in t with the ids defined in pd. The result has an id
// on every tag and pronoun data keyed by exactly those ids. Neither input is modified.
//
// Bare individual data is bound to the only id the template uses, or to DefaultID when
// the template uses none. Data for one id k fills every tag when the template uses no
// ids. Data for several ids must cover the template's ids; if some tags have no id, the
// data must define exactly one id more than the template uses, and that id fills them.
func resolveIDs(t RefinedTemplate, pd PronounData, diag DiagnosticSettings) (RefinedTemplate, PronounData, error) {
	used := t.UsedIDs()
	unspecified := t.HasUnspecifiedIDs()
	keys := pd.IDs()

	fail := func(msg string) (RefinedTemplate, PronounData, error) {
		return RefinedTemplate{}, nil, &IDResolutionError{
			Message:        msg,
			TemplateIDs:    used,
			PronounIDs:     keys,
			HasUnspecified: unspecified,
		}
	}

	if _, bare := pd[""]; bare && len(pd) > 1 {
		return RefinedTemplate{}, nil, newPronounDataError(ErrInvalidPronounData, "", "",
			"the empty id is reserved for pronoun data of a single person")
	}

	out := t.clone()
	outPD := pd.Clone()

	switch {
	case pd.IsIndividual():
		switch {
		case len(used) == 0:
			fillIDs(&out, DefaultID)
			outPD = PronounData{DefaultID: pd[""].Clone()}
		case len(used) == 1 && !unspecified:
			outPD = PronounData{used[0]: pd[""].Clone()}
		default:
			return fail("pronoun data describes one unnamed person but the template uses several ids or mixes tags with and without ids")
		}

	case len(keys) == 1:
		only := keys[0]
		switch {
		case len(used) == 0:
			fillIDs(&out, only)
		case len(used) == 1 && !unspecified && used[0] == only:
			return out, outPD, nil
		case len(used) == 1 && !unspecified:
			return fail("the template refers to \"" + used[0] + "\" but the pronoun data only defines \"" + only + "\"")
		default:
			return fail("pronoun data defines one person but the template uses several ids or mixes tags with and without ids")
		}

	default:
		missing := difference(used, keys)
		if !unspecified {
			if len(missing) > 0 {
				return fail("the template refers to ids the pronoun data does not define")
			}
			return out, outPD, nil
		}
		if len(keys) != len(used)+1 {
			return fail("the template has tags without an id, so the pronoun data must define exactly one id " +
				"more than the template uses")
		}
		if len(missing) > 0 {
			return fail("the template has tags without an id, but the ids of template and pronoun data do not match")
		}
		fillIDs(&out, difference(keys, used)[0])
	}

	diag.emit(IDMatchingNecessary, "ids of template (%v) and pronoun data (%v) had to be matched", used, keys)
	return out, outPD, nil
}

// fillIDs gives id to every tag of t that has none.
func fillIDs(t *RefinedTemplate, id string) {
	for i := range t.Tags {
		if !t.Tags[i].HasID {
			t.Tags[i].ID = id
			t.Tags[i].HasID = true
		}
	}
}

// difference returns the sorted elements of a that are not in b.
func difference(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	var out []string
	for _, s := range a {
		if !in[s] {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
