package catalog

import (
	"fmt"
	"strings"
)

const instructionTemplate = `You are "CollegeSeraBot", a helpful assistant for Indian college inquiries.
You have access to a specific dataset for %s.

Rules:
1. If the user asks about %s, prioritize the provided JSON data.
2. If the user asks about ANY other college (e.g., KCT, PSG, Anna University) or a topic not in the JSON data, you MUST IMMEDIATELY use the 'googleSearch' tool to find the information.
3. DO NOT say "I don't have information" or "Would you like me to search?". Just perform the search and provide the answer directly.
4. Always provide helpful, accurate details (fees, courses, location) regardless of the source (JSON or Search).

Data Context:
%s
`

const welcomeTemplate = "Namaste %s! I am CollegeSeraBot. I can help you with fees, courses, and admission details for top colleges. Which colleges or programs are you looking for today?"

// Welcome is the assistant's opening message for a newly registered visitor.
func (c *Catalog) Welcome(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(welcomeTemplate, name)
}

// SystemInstruction builds the assistant's instructions with the catalog
// embedded as data context.
func (c *Catalog) SystemInstruction() string {
	names := make([]string, 0, len(c.colleges))
	for _, college := range c.colleges {
		names = append(names, college.Name)
	}
	list := joinNames(names)
	return fmt.Sprintf(instructionTemplate, list, list, c.JSON())
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "no colleges"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
