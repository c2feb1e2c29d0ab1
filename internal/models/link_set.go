package models

import "slices"

// LinkSet partitions links into per-language buckets.
// Languages keep the order they were registered in.
type LinkSet struct {
	languages []string
	buckets   map[string][]LocalizedLink
}

// NewLinkSet creates a set with an empty bucket for every language.
func NewLinkSet(languages ...string) *LinkSet {
	s := &LinkSet{buckets: make(map[string][]LocalizedLink, len(languages))}
	for _, lang := range languages {
		s.ensure(lang)
	}
	return s
}

func (s *LinkSet) ensure(lang string) {
	if _, ok := s.buckets[lang]; ok {
		return
	}
	s.languages = append(s.languages, lang)
	s.buckets[lang] = []LocalizedLink{}
}

// Add appends a link to its language bucket, registering the language if needed.
func (s *LinkSet) Add(link LocalizedLink) {
	s.ensure(link.Language)
	s.buckets[link.Language] = append(s.buckets[link.Language], link)
}

// Replace swaps the whole bucket for lang.
func (s *LinkSet) Replace(lang string, links []LocalizedLink) {
	s.ensure(lang)
	s.buckets[lang] = slices.Clone(links)
}

// Get returns a copy of the bucket for lang.
func (s *LinkSet) Get(lang string) []LocalizedLink {
	return slices.Clone(s.buckets[lang])
}

// Languages returns the registered languages in order.
func (s *LinkSet) Languages() []string {
	return slices.Clone(s.languages)
}

// Count returns the bucket size for lang.
func (s *LinkSet) Count(lang string) int {
	return len(s.buckets[lang])
}

// Total returns the number of links across all buckets.
func (s *LinkSet) Total() int {
	total := 0
	for _, links := range s.buckets {
		total += len(links)
	}
	return total
}

// HasLinks reports whether any bucket is non-empty.
func (s *LinkSet) HasLinks() bool {
	return s.Total() > 0
}

// Paths returns the paths in lang's bucket, in bucket order.
func (s *LinkSet) Paths(lang string) []string {
	links := s.buckets[lang]
	paths := make([]string, len(links))
	for i, l := range links {
		paths[i] = l.Path
	}
	return paths
}
