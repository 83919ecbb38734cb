package render

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
)

// AnchorMode selects how <a> spans are rewritten.
type AnchorMode int

const (
	// AnchorsPositional replaces the i-th anchor span with the i-th quoted
	// http(s) URL found anywhere in the text. Quoted URLs and anchors that are
	// not emitted in matching order get paired wrongly.
	AnchorsPositional AnchorMode = iota
	// AnchorsHref replaces each anchor span with its own href attribute.
	AnchorsHref
)

// ParseAnchorMode maps a config value to an AnchorMode. Unknown values fall
// back to AnchorsPositional.
func ParseAnchorMode(s string) AnchorMode {
	if s == "href" {
		return AnchorsHref
	}
	return AnchorsPositional
}

// DecodeError reports a malformed HTML character entity.
type DecodeError struct {
	Offset int
	Entity string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed entity %q at offset %d", e.Entity, e.Offset)
}

var (
	entityRe    = regexp.MustCompile(`^&(#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)
	pOpenRe     = regexp.MustCompile(`(?i)<p(\s[^>]*)?>`)
	pCloseRe    = regexp.MustCompile(`(?i)</p\s*>`)
	quotedURLRe = regexp.MustCompile(`"(https?://[^"]*)"`)
	anchorRe    = regexp.MustCompile(`(?is)<a\b.*?</a>`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
	inlineTagRe = regexp.MustCompile(`(?i)</?(i|b|em|strong|code|pre)\s*>`)
)

// Sanitizer turns raw HN comment markup into plain, wrappable text.
type Sanitizer struct {
	Anchors AnchorMode
}

// Sanitize runs the default (positional) sanitizer.
func Sanitize(raw string) (string, error) {
	return Sanitizer{}.Sanitize(raw)
}

// SanitizeOrRaw runs the default sanitizer, falling back to raw on failure.
func SanitizeOrRaw(raw string) (string, error) {
	return Sanitizer{}.SanitizeOrRaw(raw)
}

// Sanitize decodes entities, replaces paragraph tags with spaces, rewrites
// anchors to bare URLs and drops inline formatting tags.
func (s Sanitizer) Sanitize(raw string) (string, error) {
	text, err := decodeEntities(raw)
	if err != nil {
		return "", err
	}

	text = pOpenRe.ReplaceAllString(text, " ")
	text = pCloseRe.ReplaceAllString(text, "")

	switch s.Anchors {
	case AnchorsHref:
		text = anchorRe.ReplaceAllStringFunc(text, anchorHref)
	default:
		text = rewriteAnchorsPositional(text)
	}

	return inlineTagRe.ReplaceAllString(text, ""), nil
}

// SanitizeOrRaw returns the sanitized text, or raw unchanged together with
// the decode error so callers can still show something.
func (s Sanitizer) SanitizeOrRaw(raw string) (string, error) {
	text, err := s.Sanitize(raw)
	if err != nil {
		return raw, err
	}
	return text, nil
}

// decodeEntities decodes HTML character entities in a single pass. Every
// '&' must start a terminated, known entity.
func decodeEntities(raw string) (string, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '&' {
			continue
		}
		m := entityRe.FindString(raw[i:])
		if m == "" || !validEntity(m) {
			return "", &DecodeError{Offset: i, Entity: entityAt(raw[i:])}
		}
		i += len(m) - 1
	}
	return html.UnescapeString(raw), nil
}

func validEntity(entity string) bool {
	body := entity[1 : len(entity)-1]
	if strings.HasPrefix(body, "#") {
		var n uint64
		var err error
		if len(body) > 1 && (body[1] == 'x' || body[1] == 'X') {
			n, err = strconv.ParseUint(body[2:], 16, 32)
		} else {
			n, err = strconv.ParseUint(body[1:], 10, 32)
		}
		return err == nil && n <= 0x10FFFF
	}
	return html.UnescapeString(entity) != entity
}

// entityAt returns the entity-like token at the start of s for error messages.
func entityAt(s string) string {
	end := strings.IndexAny(s[1:], "; \t\n<&")
	if end < 0 {
		return s
	}
	if s[1+end] == ';' {
		return s[:end+2]
	}
	return s[:end+1]
}

func rewriteAnchorsPositional(text string) string {
	var urls []string
	for _, m := range quotedURLRe.FindAllStringSubmatch(text, -1) {
		urls = append(urls, m[1])
	}

	spans := anchorRe.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return text
	}

	var sb strings.Builder
	last := 0
	for i, span := range spans {
		sb.WriteString(text[last:span[0]])
		if i < len(urls) {
			sb.WriteString(urls[i])
		} else {
			sb.WriteString(tagRe.ReplaceAllString(text[span[0]:span[1]], ""))
		}
		last = span[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// anchorHref returns the href of an anchor span, or its inner text when the
// anchor has none.
func anchorHref(span string) string {
	z := xhtml.NewTokenizer(strings.NewReader(span))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return tagRe.ReplaceAllString(span, "")
		case xhtml.StartTagToken:
			t := z.Token()
			if t.Data != "a" {
				continue
			}
			for _, attr := range t.Attr {
				if attr.Key == "href" && attr.Val != "" {
					return attr.Val
				}
			}
			return tagRe.ReplaceAllString(span, "")
		}
	}
}
