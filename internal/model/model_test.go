package model

import "testing"

func TestPostLocalizedFields(t *testing.T) {
	p := &Post{
		TitleEn:   "Hello",
		TitleDe:   "Hallo",
		ContentEn: "Body",
		ContentDe: "",
	}

	if got := p.Title("de"); got != "Hallo" {
		t.Errorf("Title(de) = %q, want Hallo", got)
	}
	if got := p.Title("en"); got != "Hello" {
		t.Errorf("Title(en) = %q, want Hello", got)
	}
	if got := p.Content("de"); got != "Body" {
		t.Errorf("Content(de) without German body = %q, want Body", got)
	}
}

func TestPostMetaTitleFallsBackToTitle(t *testing.T) {
	p := &Post{TitleEn: "Hello", TitleDe: "Hallo"}

	if got := p.MetaTitle("de"); got != "Hallo" {
		t.Errorf("MetaTitle(de) = %q, want Hallo", got)
	}

	p.MetaTitleEn = "Hello | Avenra"
	if got := p.MetaTitle("en"); got != "Hello | Avenra" {
		t.Errorf("MetaTitle(en) = %q", got)
	}
}

func TestFaqLocalizedFields(t *testing.T) {
	f := &Faq{QuestionEn: "Why?", QuestionDe: "Warum?", AnswerEn: "Because."}

	if got := f.Question("de"); got != "Warum?" {
		t.Errorf("Question(de) = %q", got)
	}
	if got := f.Answer("de"); got != "Because." {
		t.Errorf("Answer(de) = %q, want English fallback", got)
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("admin role not recognized")
	}
	other := &User{Role: "editor"}
	if other.IsAdmin() {
		t.Error("non-admin role recognized as admin")
	}
}
