package html

import "testing"

func TestTokenizer_SimpleStartTag(t *testing.T) {
	tokenizer := NewTokenizer("<div>")
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag {
		t.Errorf("expected TokenStartTag, got %v", token.Type)
	}
	if token.TagName != "div" {
		t.Errorf("expected tag name 'div', got '%s'", token.TagName)
	}
}

func TestTokenizer_DataAttributes(t *testing.T) {
	tokenizer := NewTokenizer(`<img data-parallax-rule-intensity='0.5' class=layer data-parallax-rule-speed="300">`)
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"data-parallax-rule-intensity": "0.5",
		"data-parallax-rule-speed":     "300",
		"class":                        "layer",
	}
	for k, v := range want {
		if token.Attributes[k] != v {
			t.Errorf("attribute %s = %q, want %q", k, token.Attributes[k], v)
		}
	}
}

func TestTokenizer_SkipsCommentsAndDoctype(t *testing.T) {
	tokenizer := NewTokenizer("<!DOCTYPE html><!-- note --><p>hi</p>")
	token, err := tokenizer.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.Type != TokenStartTag || token.TagName != "p" {
		t.Errorf("expected start tag 'p', got %+v", token)
	}
}

func TestTokenizer_CompleteSequence(t *testing.T) {
	tokenizer := NewTokenizer("<div>  Hello\n  world </div>")
	token1, _ := tokenizer.NextToken()
	if token1.Type != TokenStartTag || token1.TagName != "div" {
		t.Error("expected start tag 'div'")
	}
	token2, _ := tokenizer.NextToken()
	if token2.Type != TokenText || token2.Text != "Hello world" {
		t.Errorf("expected text 'Hello world', got %q", token2.Text)
	}
	token3, _ := tokenizer.NextToken()
	if token3.Type != TokenEndTag || token3.TagName != "div" {
		t.Error("expected end tag 'div'")
	}
	token4, _ := tokenizer.NextToken()
	if token4.Type != TokenEOF {
		t.Error("expected EOF")
	}
}

func TestTokenizer_UnterminatedAttribute(t *testing.T) {
	tokenizer := NewTokenizer(`<div id="open>`)
	if _, err := tokenizer.NextToken(); err == nil {
		t.Error("expected error for unterminated attribute value")
	}
}
