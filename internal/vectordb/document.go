package vectordb

// Document is an indexed chunk as stored: content plus flattened metadata.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Result is a retrieved chunk with its similarity score. Scores live in
// [0,1], larger is more relevant (cosine similarity, equivalently
// 1 - cosine distance). Results are ephemeral, produced per query.
type Result struct {
	Content  string
	Metadata map[string]string
	Score    float64
}

// Source returns the source document name of a result, or "Unknown".
func (r Result) Source() string {
	if s, ok := r.Metadata["source"]; ok && s != "" {
		return s
	}
	return "Unknown"
}

// QueryFilters narrows a search by metadata predicates. Zero values mean
// "no constraint".
type QueryFilters struct {
	FileType string   // exact match on file_type
	Language string   // exact match on language
	Source   string   // exact match on source
	Topics   []string // membership: any listed topic appears in the chunk's topics
	DateFrom string   // inclusive lower bound on created_at
	DateTo   string   // inclusive upper bound on created_at
}

// Empty reports whether no predicate is set.
func (f *QueryFilters) Empty() bool {
	if f == nil {
		return true
	}
	return f.FileType == "" && f.Language == "" && f.Source == "" &&
		len(f.Topics) == 0 && f.DateFrom == "" && f.DateTo == ""
}
