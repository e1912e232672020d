// Package prodoc reads the PROSITE documentation file (prosite.doc) and
// indexes it by accession.
//
// Each entry runs from a {PDOCnnnnn} line to an {END} line. Reader yields one
// Record per entry; BuildIndex and Dictionary give random access.
package prodoc

// Record is one documentation entry.
type Record struct {
	Accession   string       `json:"accession"`
	PrositeRefs []PrositeRef `json:"prosite_refs"`
	Text        string       `json:"text"`
	References  []*Reference `json:"references"`
}

// PrositeRef links the entry to a PROSITE pattern or profile.
type PrositeRef struct {
	Accession string `json:"accession"`
	Name      string `json:"name"`
}

// Reference is one numbered literature citation. Number keeps its original
// form, e.g. "1" or "E2" for electronic references, whose URL is stored in
// Citation.
type Reference struct {
	Number   string `json:"number"`
	Authors  string `json:"authors"`
	Citation string `json:"citation"`
}
