package taxonomy

// Taxonomy maps question ids onto sections and topics.
type Taxonomy struct {
	TotalQuestions int      `json:"total_questions" yaml:"total_questions"`
	Sections       Sections `json:"sections" yaml:"sections"`
}

// Sections keeps sections in document order.
type Sections []Section

// Section is a contiguous block of question ids representing a subject.
type Section struct {
	Name   string
	Range  Range
	Topics Topics
}

// Topics keeps topics in document order.
type Topics []Topic

// Topic names a sub-range of a section. Spec is the raw range text, e.g. "3" or "1-2".
type Topic struct {
	Spec string
	Name string
}

// sectionBody is the wire shape of a section value.
type sectionBody struct {
	Range  Range  `json:"range" yaml:"range"`
	Topics Topics `json:"topics" yaml:"topics"`
}

// Section returns the section with the given name.
func (t Taxonomy) Section(name string) (Section, bool) {
	for _, section := range t.Sections {
		if section.Name == name {
			return section, true
		}
	}
	return Section{}, false
}

// SectionNames returns section names in document order.
func (t Taxonomy) SectionNames() []string {
	names := make([]string, 0, len(t.Sections))
	for _, section := range t.Sections {
		names = append(names, section.Name)
	}
	return names
}
