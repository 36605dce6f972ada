// Package catalog holds the read-only reference data about colleges the
// assistant answers from, and detects which of them a chat message mentions.
package catalog

import (
	"encoding/json"
	"sort"
	"strings"
)

// College is one entry of the reference catalog.
type College struct {
	Name     string   `json:"name"`
	Fees     string   `json:"fees"`
	Courses  []string `json:"courses"`
	Website  string   `json:"website"`
	Location string   `json:"location"`
}

// Catalog is an immutable list of colleges plus the abbreviations visitors
// commonly use for them.
type Catalog struct {
	colleges   []College
	shortForms []string
}

// DefaultShortForms are matched when a college's full name contains them.
var DefaultShortForms = []string{"IIT", "VIT", "SRM"}

// New builds a catalog. The slices are copied.
func New(colleges []College, shortForms []string) *Catalog {
	c := &Catalog{
		colleges:   make([]College, len(colleges)),
		shortForms: append([]string(nil), shortForms...),
	}
	for i, college := range colleges {
		college.Courses = append([]string(nil), college.Courses...)
		c.colleges[i] = college
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New([]College{
		{
			Name:     "IIT Madras",
			Fees:     "Approx. ₹2-3 Lakhs per year (varies by category)",
			Courses:  []string{"Computer Science", "Electrical Engineering", "Mechanical Engineering", "Aerospace", "Civil Engineering"},
			Website:  "https://www.iitm.ac.in",
			Location: "Chennai, Tamil Nadu",
		},
		{
			Name:     "VIT Vellore",
			Fees:     "Approx. ₹1.98 - 7.8 Lakhs per year (based on category)",
			Courses:  []string{"CSE", "ECE", "IT", "Mechanical", "Biotech"},
			Website:  "https://vit.ac.in",
			Location: "Vellore, Tamil Nadu",
		},
		{
			Name:     "SRM Institute of Science and Technology",
			Fees:     "Approx. ₹2.5 - 4.5 Lakhs per year",
			Courses:  []string{"CSE", "ECE", "Robotics", "Artificial Intelligence", "Cyber Security"},
			Website:  "https://www.srmist.edu.in",
			Location: "Kattankulathur, Tamil Nadu",
		},
	}, DefaultShortForms)
}

// Colleges returns a copy of the catalog entries.
func (c *Catalog) Colleges() []College {
	out := make([]College, len(c.colleges))
	for i, college := range c.colleges {
		college.Courses = append([]string(nil), college.Courses...)
		out[i] = college
	}
	return out
}

// DetectColleges returns the names of the colleges message refers to, in
// catalog order. A college matches when the message contains its full name,
// or when its name contains one of the short forms and the message does too.
// Matching is case-insensitive substring matching.
func (c *Catalog) DetectColleges(message string) []string {
	lower := strings.ToLower(message)
	if strings.TrimSpace(lower) == "" {
		return []string{}
	}

	found := make([]string, 0)
	for _, college := range c.colleges {
		if c.mentions(lower, college.Name) {
			found = append(found, college.Name)
		}
	}
	return found
}

func (c *Catalog) mentions(lowerMessage, name string) bool {
	lowerName := strings.ToLower(name)
	if lowerName != "" && strings.Contains(lowerMessage, lowerName) {
		return true
	}
	for _, short := range c.shortForms {
		lowerShort := strings.ToLower(short)
		if lowerShort == "" {
			continue
		}
		if strings.Contains(lowerName, lowerShort) && strings.Contains(lowerMessage, lowerShort) {
			return true
		}
	}
	return false
}

// MergeTags unions caller-supplied tags with detected ones. Blank entries are
// dropped, surrounding whitespace is trimmed and the result is sorted.
func MergeTags(seed, detected []string) []string {
	set := make(map[string]struct{}, len(seed)+len(detected))
	for _, list := range [][]string{seed, detected} {
		for _, tag := range list {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			set[tag] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Tags detects colleges in message and merges them with seed.
func (c *Catalog) Tags(message string, seed []string) []string {
	return MergeTags(seed, c.DetectColleges(message))
}

// JSON renders the catalog the way it is embedded in the assistant's
// instructions.
func (c *Catalog) JSON() string {
	data, err := json.Marshal(c.colleges)
	if err != nil {
		return "[]"
	}
	return string(data)
}
