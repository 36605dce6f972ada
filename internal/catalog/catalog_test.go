package catalog

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDetectColleges(t *testing.T) {
	c := Default()

	cases := []struct {
		message string
		want    []string
	}{
		{"What are the fees at IIT Madras?", []string{"IIT Madras"}},
		{"compare iit and srm please", []string{"IIT Madras", "SRM Institute of Science and Technology"}},
		{"Is vit vellore good for CSE?", []string{"VIT Vellore"}},
		{"Tell me about SRM INSTITUTE OF SCIENCE AND TECHNOLOGY", []string{"SRM Institute of Science and Technology"}},
		{"What about PSG Tech?", []string{}},
		{"", []string{}},
	}

	for _, tc := range cases {
		got := c.DetectColleges(tc.message)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("DetectColleges(%q) = %v, want %v", tc.message, got, tc.want)
		}
	}
}

func TestShortFormRequiresNameToContainIt(t *testing.T) {
	c := New([]College{{Name: "Anna University"}}, DefaultShortForms)

	if got := c.DetectColleges("is IIT better than anna?"); len(got) != 0 {
		t.Fatalf("short form must not tag a college whose name lacks it, got %v", got)
	}
}

func TestMergeTags(t *testing.T) {
	got := MergeTags([]string{" VIT Vellore", "", "IIT Madras"}, []string{"IIT Madras", "SRM Institute of Science and Technology"})
	want := []string{"IIT Madras", "SRM Institute of Science and Technology", "VIT Vellore"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergeTags = %v, want %v", got, want)
	}

	if got := MergeTags(nil, nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTagsIsDeterministic(t *testing.T) {
	c := Default()
	first := c.Tags("srm or iit?", []string{"VIT Vellore"})
	second := c.Tags("srm or iit?", []string{"VIT Vellore"})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical tag sets, got %v and %v", first, second)
	}
}

func TestCollegesReturnsCopy(t *testing.T) {
	c := Default()
	colleges := c.Colleges()
	colleges[0].Courses[0] = "changed"

	if c.Colleges()[0].Courses[0] != "Computer Science" {
		t.Fatalf("catalog must not be mutable through Colleges()")
	}
}

func TestSystemInstructionEmbedsCatalog(t *testing.T) {
	c := Default()
	instruction := c.SystemInstruction()

	if !strings.Contains(instruction, `"CollegeSeraBot"`) {
		t.Fatalf("instruction must name the assistant")
	}
	if !strings.Contains(instruction, "IIT Madras, VIT Vellore, and SRM Institute of Science and Technology") {
		t.Fatalf("instruction must list catalog colleges, got:\n%s", instruction)
	}

	idx := strings.Index(instruction, "Data Context:\n")
	if idx < 0 {
		t.Fatalf("missing data context")
	}
	var decoded []College
	if err := json.Unmarshal([]byte(strings.TrimSpace(instruction[idx+len("Data Context:\n"):])), &decoded); err != nil {
		t.Fatalf("data context is not valid JSON: %v", err)
	}
	if len(decoded) != 3 || decoded[1].Website != "https://vit.ac.in" {
		t.Fatalf("unexpected data context %+v", decoded)
	}
}

func TestWelcomeGreetsByName(t *testing.T) {
	got := Default().Welcome(" Asha ")
	if !strings.HasPrefix(got, "Namaste Asha! I am CollegeSeraBot.") {
		t.Fatalf("unexpected greeting %q", got)
	}
	if got := Default().Welcome(""); !strings.HasPrefix(got, "Namaste there!") {
		t.Fatalf("unexpected fallback greeting %q", got)
	}
}
