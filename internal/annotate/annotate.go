package annotate

import "context"

// Coarse part-of-speech tags, following the Universal Dependencies tag set
// that dependency-parsing backends commonly emit.
const (
	POSNoun  = "NOUN"
	POSPropn = "PROPN"
	POSVerb  = "VERB"
	POSAux   = "AUX"
	POSAdj   = "ADJ"
	POSAdv   = "ADV"
	POSAdp   = "ADP"
	POSNum   = "NUM"
	POSPart  = "PART"
	POSDet   = "DET"
	POSCconj = "CCONJ"
	POSPron  = "PRON"
	POSPunct = "PUNCT"
)

// Dependency relations used by the extractor
const (
	DepRoot     = "ROOT"
	DepNsubj    = "nsubj"
	DepAux      = "aux"
	DepNeg      = "neg"
	DepDobj     = "dobj"
	DepPobj     = "pobj"
	DepPrep     = "prep"
	DepAmod     = "amod"
	DepAcomp    = "acomp"
	DepCompound = "compound"
	DepNummod   = "nummod"
	DepDet      = "det"
)

// Token is a single annotated token
type Token struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
}

// Dependency is a directed edge from a head token to a child token
type Dependency struct {
	Head     int    `json:"head"`
	Child    int    `json:"child"`
	Relation string `json:"relation"`
}

// Sentence is the annotation of one requirement sentence
type Sentence struct {
	Text         string       `json:"text"`
	Tokens       []Token      `json:"tokens"`
	Dependencies []Dependency `json:"dependencies"`
}

// Annotator is the single capability the extraction pipeline depends on.
// Implementations must be deterministic: annotating the same sentence twice
// yields identical output.
type Annotator interface {
	Annotate(ctx context.Context, sentence string) (*Sentence, error)
}

// Root returns the index of the ROOT token, or -1 if the sentence has none
func (s *Sentence) Root() int {
	for _, d := range s.Dependencies {
		if d.Relation == DepRoot {
			return d.Child
		}
	}
	return -1
}

// Child returns the first child of head with the given relation, or -1
func (s *Sentence) Child(head int, relation string) int {
	for _, d := range s.Dependencies {
		if d.Head == head && d.Relation == relation {
			return d.Child
		}
	}
	return -1
}

// Children returns all children of head with the given relation, in token order
func (s *Sentence) Children(head int, relation string) []int {
	var out []int
	for _, d := range s.Dependencies {
		if d.Head == head && d.Relation == relation {
			out = append(out, d.Child)
		}
	}
	return out
}

// Has reports whether any edge with the given relation exists
func (s *Sentence) Has(relation string) bool {
	for _, d := range s.Dependencies {
		if d.Relation == relation {
			return true
		}
	}
	return false
}
