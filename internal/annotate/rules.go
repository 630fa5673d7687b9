package annotate

import (
	"context"
	"strings"
	"unicode"
)

// RuleAnnotator is the built-in annotation backend: a deterministic
// lexicon-and-position tagger with a shallow dependency builder tuned for
// single-clause requirement sentences ("The X must VERB ..."). It needs no
// external service and always produces the same annotation for the same
// sentence.
type RuleAnnotator struct{}

// NewRuleAnnotator creates the built-in rule-based annotator
func NewRuleAnnotator() *RuleAnnotator {
	return &RuleAnnotator{}
}

var (
	determiners = wordSet("a", "an", "the", "this", "that", "these", "those", "every", "each", "its")

	modalAux = wordSet("must", "should", "could", "will", "shall", "can", "may", "would", "might")

	beForms = wordSet("be", "is", "are", "was", "were", "been", "being")

	negations = wordSet("not", "never")

	prepositions = wordSet(
		"in", "on", "at", "of", "by", "for", "from", "with", "within",
		"between", "during", "under", "over", "after", "before", "into",
		"onto", "about", "per", "via", "without",
	)

	conjunctions = wordSet("and", "or", "but")

	pronouns = wordSet("it", "they", "he", "she", "we", "you", "i", "them", "him", "her", "us")

	unitNouns = wordSet(
		"second", "seconds", "minute", "minutes", "hour", "hours",
		"millisecond", "milliseconds", "ms", "day", "days", "week", "weeks",
	)

	numberWords = map[string]float64{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
		"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
		"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
		"nineteen": 19, "twenty": 20, "hundred": 100, "thousand": 1000,
	}

	adjectives = wordSet(
		"blue", "white", "red", "green", "black", "yellow", "grey", "gray",
		"orange", "purple", "pink", "brown", "new", "old", "large", "small",
		"responsive", "visible", "hidden", "secure", "valid", "invalid",
		"empty", "blank", "unique", "current", "main", "able", "fast",
		"slow", "mobile", "mandatory", "optional", "default",
	)

	adjectiveSuffixes = []string{"able", "ible", "ful", "ive", "ous", "less"}

	verbs = wordSet(
		"have", "display", "show", "load", "adapt", "delete", "create",
		"update", "remove", "add", "click", "select", "open", "close",
		"log", "register", "store", "save", "send", "receive", "view",
		"search", "navigate", "resize", "scroll", "contain", "include",
		"support", "allow", "provide", "render", "redirect", "validate",
		"generate", "export", "import", "edit", "filter", "sort", "print",
		"refresh", "respond", "start", "stop", "run", "change", "use",
		"access", "enter", "submit", "cancel", "confirm", "reset",
	)
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Annotate tokenizes, tags and dependency-links one sentence
func (a *RuleAnnotator) Annotate(_ context.Context, sentence string) (*Sentence, error) {
	tokens := a.tokenize(sentence)
	a.tag(tokens)

	s := &Sentence{
		Text:   sentence,
		Tokens: tokens,
	}
	a.link(s)
	return s, nil
}

// tokenize splits on whitespace, lower-cases, and peels terminal punctuation
// into its own token
func (a *RuleAnnotator) tokenize(sentence string) []Token {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(sentence)))

	var tokens []Token
	for _, f := range fields {
		text := strings.Trim(f, ",;:\"'()")
		if text == "" {
			continue
		}

		punct := ""
		if n := len(text); n > 1 {
			switch text[n-1] {
			case '.', '!', '?':
				punct = text[n-1:]
				text = text[:n-1]
			}
		}

		tokens = append(tokens, Token{Index: len(tokens), Text: text})
		if punct != "" {
			tokens = append(tokens, Token{Index: len(tokens), Text: punct, POS: POSPunct, Lemma: punct})
		}
	}
	return tokens
}

// tag assigns a coarse POS tag and lemma to every token
func (a *RuleAnnotator) tag(tokens []Token) {
	afterModal := -1 // index of the first token after the modal chain

	for i := range tokens {
		t := &tokens[i]
		if t.POS == POSPunct {
			continue
		}

		switch {
		case isNumeric(t.Text):
			t.POS = POSNum
		case determiners[t.Text]:
			t.POS = POSDet
		case modalAux[t.Text]:
			t.POS = POSAux
		case beForms[t.Text]:
			t.POS = POSAux
		case negations[t.Text]:
			t.POS = POSPart
		case t.Text == "to":
			// Infinitival "to" ("able to delete") is a particle; otherwise
			// it heads a prepositional phrase ("adapt to screen size").
			if i > 0 && tokens[i-1].Text == "able" {
				t.POS = POSPart
			} else {
				t.POS = POSAdp
			}
		case conjunctions[t.Text]:
			t.POS = POSCconj
		case pronouns[t.Text]:
			t.POS = POSPron
		case unitNouns[t.Text]:
			t.POS = POSNoun
		case a.looksAdjectival(t.Text):
			t.POS = POSAdj
		case strings.HasSuffix(t.Text, "ly") && len(t.Text) > 4:
			t.POS = POSAdv
		case prepositions[t.Text]:
			t.POS = POSAdp
		case verbs[t.Text]:
			t.POS = POSVerb
		default:
			t.POS = POSNoun
		}

		t.Lemma = lemmatize(t.Text, t.POS)
	}

	// Positional corrections. A lexicon verb that immediately follows a
	// determiner, adjective or preposition is a noun use ("the display").
	for i := 1; i < len(tokens); i++ {
		t := &tokens[i]
		if t.POS != POSVerb {
			continue
		}
		switch tokens[i-1].POS {
		case POSDet, POSAdj, POSAdp:
			t.POS = POSNoun
			t.Lemma = lemmatize(t.Text, POSNoun)
		}
	}

	// The first content token after the modal chain is the main verb even
	// when it is not in the verb lexicon ("must paginate the results").
	afterModal = endOfModalChain(tokens)
	if afterModal >= 0 && afterModal < len(tokens) {
		t := &tokens[afterModal]
		if t.POS == POSNoun || t.POS == POSVerb {
			t.POS = POSVerb
			t.Lemma = lemmatize(t.Text, POSVerb)
		}

		// A single-clause sentence has one verb. Lexicon verbs later in
		// the sentence are noun uses ("screen size change").
		for i := afterModal + 1; i < len(tokens); i++ {
			l := &tokens[i]
			if l.POS == POSVerb {
				l.POS = POSNoun
				l.Lemma = lemmatize(l.Text, POSNoun)
			}
		}
	}
}

// endOfModalChain returns the index of the first token after the modal span
// ("must", "must not", "could be able to"), or -1 if there is no modal
func endOfModalChain(tokens []Token) int {
	modal := -1
	for i, t := range tokens {
		if t.POS == POSAux && modalAux[t.Text] {
			modal = i
			break
		}
	}
	if modal < 0 {
		return -1
	}

	i := modal + 1
	for i < len(tokens) {
		t := tokens[i]
		if t.POS == POSPart && negations[t.Text] {
			i++
			continue
		}
		if beForms[t.Text] || t.Text == "able" || t.Text == "to" {
			i++
			continue
		}
		break
	}
	return i
}

// link builds the shallow dependency tree the extractor consumes
func (a *RuleAnnotator) link(s *Sentence) {
	tokens := s.Tokens

	root := -1
	if after := endOfModalChain(tokens); after >= 0 && after < len(tokens) {
		switch {
		case tokens[after].POS == POSVerb:
			root = after
		case tokens[after].POS == POSAdj && after > 0 && beForms[tokens[after-1].Text]:
			// Copular sentence ("must be responsive"): the be-form is the
			// root and the quality attaches as its complement.
			root = after - 1
		}
	}
	if root < 0 {
		for i, t := range tokens {
			if t.POS == POSVerb {
				root = i
				break
			}
		}
	}
	if root < 0 {
		// No verb at all: noun-phrase links are still emitted so the
		// extractor can report a precise failure.
		a.linkNounPhrases(s, 0, len(tokens))
		return
	}

	s.Dependencies = append(s.Dependencies, Dependency{Head: root, Child: root, Relation: DepRoot})

	// Subject: head of the last noun phrase before the modal chain (or
	// before the root when there is no modal).
	subjEnd := root
	for i, t := range tokens {
		if i >= root {
			break
		}
		if t.POS == POSAux {
			subjEnd = i
			break
		}
	}
	if subj := nounPhraseHead(tokens, 0, subjEnd); subj >= 0 {
		s.Dependencies = append(s.Dependencies, Dependency{Head: root, Child: subj, Relation: DepNsubj})
	}

	// Modal span edges. "able" in a "be able to" chain carries no content,
	// so it gets no edge.
	for i := 0; i < root; i++ {
		t := tokens[i]
		switch {
		case t.POS == POSAux:
			s.Dependencies = append(s.Dependencies, Dependency{Head: root, Child: i, Relation: DepAux})
		case t.POS == POSPart && negations[t.Text]:
			s.Dependencies = append(s.Dependencies, Dependency{Head: root, Child: i, Relation: DepNeg})
		}
	}

	// Adjectival complement of a copular root ("must be responsive")
	if beForms[tokens[root].Text] {
		for i := root + 1; i < len(tokens); i++ {
			t := tokens[i]
			if t.POS == POSAdp || t.POS == POSPunct {
				break
			}
			if t.POS == POSAdj {
				s.Dependencies = append(s.Dependencies, Dependency{Head: root, Child: i, Relation: DepAcomp})
			}
		}
	}

	// Direct object: first noun phrase after the root that is not inside a
	// prepositional phrase.
	objStart := root + 1
	objEnd := len(tokens)
	for i := objStart; i < len(tokens); i++ {
		if tokens[i].POS == POSAdp || tokens[i].POS == POSPunct {
			objEnd = i
			break
		}
	}
	if obj := nounPhraseHead(tokens, objStart, objEnd); obj >= 0 {
		s.Dependencies = append(s.Dependencies, Dependency{Head: root, Child: obj, Relation: DepDobj})
	}

	// Prepositional phrases: each ADP attaches to the root, its object noun
	// phrase to the ADP.
	for i := root + 1; i < len(tokens); i++ {
		if tokens[i].POS != POSAdp {
			continue
		}
		s.Dependencies = append(s.Dependencies, Dependency{Head: root, Child: i, Relation: DepPrep})

		end := len(tokens)
		for j := i + 1; j < len(tokens); j++ {
			if tokens[j].POS == POSAdp || tokens[j].POS == POSPunct {
				end = j
				break
			}
		}
		if pobj := nounPhraseHead(tokens, i+1, end); pobj >= 0 {
			s.Dependencies = append(s.Dependencies, Dependency{Head: i, Child: pobj, Relation: DepPobj})
		}
	}

	a.linkNounPhrases(s, 0, len(tokens))
}

// linkNounPhrases emits det, amod, compound and nummod edges: every
// determiner, adjective, noun or numeral run attaches to the noun that heads
// its phrase
func (a *RuleAnnotator) linkNounPhrases(s *Sentence, start, end int) {
	tokens := s.Tokens

	for i := start; i < end; i++ {
		if tokens[i].POS != POSNoun && tokens[i].POS != POSPropn {
			continue
		}

		// Walk to the phrase head: the last noun in this contiguous run.
		head := i
		for head+1 < end && (tokens[head+1].POS == POSNoun || tokens[head+1].POS == POSPropn) {
			head++
		}

		// Attach leading modifiers to the head.
		for j := i; j < head; j++ {
			s.Dependencies = append(s.Dependencies, Dependency{Head: head, Child: j, Relation: DepCompound})
		}
		for j := i - 1; j >= start; j-- {
			switch tokens[j].POS {
			case POSAdj:
				s.Dependencies = append(s.Dependencies, Dependency{Head: head, Child: j, Relation: DepAmod})
			case POSDet:
				s.Dependencies = append(s.Dependencies, Dependency{Head: head, Child: j, Relation: DepDet})
			case POSNum:
				s.Dependencies = append(s.Dependencies, Dependency{Head: head, Child: j, Relation: DepNummod})
			default:
				j = -1 // stop at anything else
				continue
			}
			if j == 0 {
				break
			}
		}

		i = head // skip past this phrase
	}
}

// nounPhraseHead finds the head (last noun of the last contiguous noun run)
// in tokens[start:end], or -1
func nounPhraseHead(tokens []Token, start, end int) int {
	head := -1
	for i := start; i < end && i < len(tokens); i++ {
		if tokens[i].POS == POSNoun || tokens[i].POS == POSPropn {
			head = i
		}
	}
	return head
}

// looksAdjectival checks the adjective lexicon and common suffixes
func (a *RuleAnnotator) looksAdjectival(word string) bool {
	if adjectives[word] {
		return true
	}
	for _, suffix := range adjectiveSuffixes {
		if strings.HasSuffix(word, suffix) && len(word) > len(suffix)+2 {
			return true
		}
	}
	return false
}

// isNumeric accepts digit strings, decimals and spelled-out number words
func isNumeric(word string) bool {
	if _, ok := numberWords[word]; ok {
		return true
	}
	hasDigit := false
	for _, r := range word {
		if unicode.IsDigit(r) {
			hasDigit = true
		} else if r != '.' && r != ',' {
			return false
		}
	}
	return hasDigit
}

// NumberValue parses a numeric token produced by isNumeric
func NumberValue(word string) (float64, bool) {
	if v, ok := numberWords[word]; ok {
		return v, true
	}
	clean := strings.ReplaceAll(word, ",", "")
	var v float64
	var frac float64 = 1
	seenDot := false
	for _, r := range clean {
		if r == '.' {
			if seenDot {
				return 0, false
			}
			seenDot = true
			continue
		}
		if !unicode.IsDigit(r) {
			return 0, false
		}
		if seenDot {
			frac /= 10
			v += float64(r-'0') * frac
		} else {
			v = v*10 + float64(r-'0')
		}
	}
	return v, true
}

// lemmatize reduces a surface form to its canonical lemma: a minimal
// stemmer in the spirit of regular-plural trimming only
func lemmatize(word, pos string) string {
	switch pos {
	case POSNoun, POSPropn, POSVerb:
		if n := len(word); n > 3 && word[n-1] == 's' &&
			!strings.HasSuffix(word, "ss") &&
			!strings.HasSuffix(word, "us") &&
			!strings.HasSuffix(word, "is") {
			return word[:n-1]
		}
	}
	return word
}

// Singularize exposes the noun lemmatization rule for canonical entity names
func Singularize(word string) string {
	return lemmatize(word, POSNoun)
}
