package html

import (
	"fmt"
	gohtml "html"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

type Token struct {
	Type        TokenType
	TagName     string
	Attributes  map[string]string
	Text        string
	SelfClosing bool
}

type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(html string) *Tokenizer {
	return &Tokenizer{input: html}
}

func (t *Tokenizer) NextToken() (Token, error) {
	for t.pos < len(t.input) {
		if t.input[t.pos] != '<' {
			if tok, ok := t.readText(); ok {
				return tok, nil
			}
			continue
		}
		if t.skipMarkupDeclaration() {
			continue
		}
		return t.readTag()
	}
	return Token{Type: TokenEOF}, nil
}

// skipMarkupDeclaration consumes <!-- comments -->, <!DOCTYPE> and <?...?>
// and reports whether anything was consumed.
func (t *Tokenizer) skipMarkupDeclaration() bool {
	rest := t.input[t.pos:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		t.skipPast("-->")
	case strings.HasPrefix(rest, "<?"):
		t.skipPast("?>")
	case strings.HasPrefix(rest, "<!"):
		t.skipPast(">")
	default:
		return false
	}
	return true
}

func (t *Tokenizer) skipPast(end string) {
	idx := strings.Index(t.input[t.pos:], end)
	if idx < 0 {
		t.pos = len(t.input)
		return
	}
	t.pos += idx + len(end)
}

func (t *Tokenizer) readTag() (Token, error) {
	t.pos++ // '<'
	tok := Token{Type: TokenStartTag}
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		tok.Type = TokenEndTag
		t.pos++
	}
	tok.TagName = t.readName(isTagNameChar)
	if tok.TagName == "" {
		return Token{}, fmt.Errorf("expected tag name at position %d", t.pos)
	}
	if tok.Type == TokenEndTag {
		idx := strings.IndexByte(t.input[t.pos:], '>')
		if idx < 0 {
			return Token{}, fmt.Errorf("unterminated end tag </%s>", tok.TagName)
		}
		t.pos += idx + 1
		return tok, nil
	}

	tok.Attributes = make(map[string]string)
	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return Token{}, fmt.Errorf("unexpected EOF in <%s>", tok.TagName)
		}
		switch t.input[t.pos] {
		case '>':
			t.pos++
			return tok, nil
		case '/':
			t.pos++
			t.skipWhitespace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				tok.SelfClosing = true
				return tok, nil
			}
			continue
		}
		name, value, err := t.readAttribute()
		if err != nil {
			return Token{}, err
		}
		tok.Attributes[name] = value
	}
}

func (t *Tokenizer) readName(valid func(byte) bool) string {
	start := t.pos
	for t.pos < len(t.input) && valid(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *Tokenizer) readAttribute() (string, string, error) {
	name := t.readName(isAttributeNameChar)
	if name == "" {
		return "", "", fmt.Errorf("expected attribute name at position %d", t.pos)
	}
	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return name, "", nil
	}
	t.pos++
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return "", "", fmt.Errorf("expected value for attribute %q", name)
	}

	if quote := t.input[t.pos]; quote == '"' || quote == '\'' {
		end := strings.IndexByte(t.input[t.pos+1:], quote)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated value for attribute %q", name)
		}
		value := t.input[t.pos+1 : t.pos+1+end]
		t.pos += end + 2
		return name, gohtml.UnescapeString(value), nil
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return name, gohtml.UnescapeString(t.input[start:t.pos]), nil
}

// readText consumes text up to the next '<'. Whitespace-only runs are
// dropped and reported as !ok.
func (t *Tokenizer) readText() (Token, bool) {
	start := t.pos
	if idx := strings.IndexByte(t.input[t.pos:], '<'); idx >= 0 {
		t.pos += idx
	} else {
		t.pos = len(t.input)
	}
	raw := t.input[start:t.pos]
	if strings.TrimSpace(raw) == "" {
		return Token{}, false
	}
	text := strings.Join(strings.Fields(raw), " ")
	return Token{Type: TokenText, Text: gohtml.UnescapeString(text)}, true
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

// ReadRawUntil reads raw content until the closing end tag (e.g. </script>),
// case-insensitively. Used for elements whose body is not markup.
func (t *Tokenizer) ReadRawUntil(endTag string) string {
	needle := "</" + endTag + ">"
	idx := strings.Index(strings.ToLower(t.input[t.pos:]), needle)
	if idx < 0 {
		content := t.input[t.pos:]
		t.pos = len(t.input)
		return content
	}
	content := t.input[t.pos : t.pos+idx]
	t.pos += idx + len(needle)
	return content
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttributeNameChar(c byte) bool {
	return isTagNameChar(c) || c == ':' || c == '.'
}
