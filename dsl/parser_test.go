package dsl

import (
	"testing"
)

func TestParsePostDocument(t *testing.T) {
	input := `
// launch card
post launch {
  platform instagram-square
  template stats
  headline: "2 Ratings"
  body: "Match Score for skill."
  background gradient {
    start: #059669
    end: #ea580c
    angle: 135deg
  }
  logo: on; badge: off
}
`
	doc, err := ParseString(input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Kind != "post" || doc.Name != "launch" {
		t.Fatalf("unexpected header: %q %q", doc.Kind, doc.Name)
	}
	if doc.Block == nil || len(doc.Block.Statements) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(doc.Block.Statements))
	}

	platform := doc.Block.Statements[0].Command
	if platform == nil || platform.Name != "platform" || len(platform.Args) != 1 || platform.Args[0].Value != "instagram-square" {
		t.Fatalf("platform command mismatch: %#v", platform)
	}

	headline := doc.Block.Statements[2].Assignment
	if headline == nil || headline.Key != "headline" || headline.Value.Text() != "2 Ratings" {
		t.Fatalf("headline assignment mismatch: %#v", headline)
	}

	bg := doc.Block.Statements[4].Command
	if bg == nil || bg.Name != "background" || bg.Block == nil {
		t.Fatalf("background command should carry a block: %#v", bg)
	}
	if len(bg.Block.Statements) != 3 {
		t.Fatalf("expected 3 gradient statements, got %d", len(bg.Block.Statements))
	}
	start := bg.Block.Statements[0].Assignment
	if start.Value.Color == nil || *start.Value.Color != "#059669" {
		t.Fatalf("start color mismatch: %#v", start.Value)
	}
	angle, err := bg.Block.Statements[2].Assignment.Value.Float()
	if err != nil || angle != 135 {
		t.Fatalf("angle mismatch: %v %v", angle, err)
	}

	logo, err := doc.Block.Statements[5].Assignment.Value.Bool()
	if err != nil || !logo {
		t.Fatalf("logo should be on: %v %v", logo, err)
	}
}

func TestParseMockupDocument(t *testing.T) {
	input := `mockup hero {
  device iphone-15-pro
  rotation: -8
  scale: 80%
  shadow: 50
  reflection: yes
  screenshot: "shots/home.png"
  background solid #fffbeb
}`
	doc, err := ParseString(input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Kind != "mockup" {
		t.Fatalf("kind mismatch: %q", doc.Kind)
	}
	rot, err := doc.Block.Statements[1].Assignment.Value.Float()
	if err != nil || rot != -8 {
		t.Fatalf("rotation mismatch: %v %v", rot, err)
	}
	scale, err := doc.Block.Statements[2].Assignment.Value.Float()
	if err != nil || scale != 80 {
		t.Fatalf("scale mismatch: %v %v", scale, err)
	}
	bg := doc.Block.Statements[6].Command
	if len(bg.Args) != 2 || bg.Args[0].Value != "solid" || bg.Args[1].Value != "#fffbeb" {
		t.Fatalf("background args mismatch: %#v", bg.Args)
	}
}

func TestParseRejectsUnknownKind(t *testing.T) {
	if _, err := ParseString(`poster x { }`); err == nil {
		t.Fatalf("expected error for unknown document kind")
	}
}

func TestParseBool(t *testing.T) {
	for raw, want := range map[string]bool{"on": true, "YES": true, "false": false, "off": false} {
		got, err := ParseBool(raw)
		if err != nil || got != want {
			t.Fatalf("ParseBool(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatalf("expected error for invalid boolean")
	}
}
