package aimode

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
)

// Class names Google currently uses for the AI Mode answer. Unversioned and
// subject to silent change.
const (
	containerSelector = "div.mZJni.Dn7Fzd"
	textSelector      = "div.Y3BBE"
	codeSelector      = "div.r1PmQe"
	langSelector      = "div.vVRw1d"
)

// Labels after a code block ("Output:" and the like) are only kept when
// short; anything longer is a regular paragraph already captured above.
const maxLabelLen = 50

type BlockKind string

const (
	TextBlock BlockKind = "text"
	CodeBlock BlockKind = "code"
)

// Block is one unit of an extracted answer: a prose paragraph or a fenced
// code block with an optional language tag.
type Block struct {
	Kind BlockKind
	Lang string
	Body string
}

// Answer is the extracted AI Mode response for one query.
type Answer struct {
	Blocks []Block
}

var spaceRun = regexp.MustCompile(`\s+`)

/*
Extract pulls the answer out of a rendered results page. Prose paragraphs are
whitespace-collapsed; code bodies keep their internal whitespace and line
breaks verbatim. Returns ErrNoAnswer when the answer container is absent or
empty.
*/
func Extract(html string) (*Answer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	container := doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return nil, gtalkerr.ErrNoAnswer
	}

	var blocks []Block

	container.Find(textSelector).Each(func(_ int, s *goquery.Selection) {
		// Text nested inside a code container belongs to the code pass.
		if s.ParentsFiltered(codeSelector).Length() > 0 {
			return
		}
		text := strings.TrimSpace(spaceRun.ReplaceAllString(s.Text(), " "))
		if text != "" {
			blocks = append(blocks, Block{Kind: TextBlock, Body: text})
		}
	})

	container.Find(codeSelector).Each(func(_ int, s *goquery.Selection) {
		code := s.Find("pre code").First()
		if code.Length() == 0 {
			return
		}
		lang := strings.TrimSpace(s.Find(langSelector).First().Text())
		blocks = append(blocks, Block{Kind: CodeBlock, Lang: lang, Body: code.Text()})

		if label := s.NextAllFiltered(textSelector).First(); label.Length() > 0 {
			text := strings.TrimSpace(label.Text())
			if text != "" && utf8.RuneCountInString(text) < maxLabelLen {
				blocks = append(blocks, Block{Kind: TextBlock, Body: text})
			}
		}
	})

	if len(blocks) == 0 {
		return nil, gtalkerr.ErrNoAnswer
	}
	return &Answer{Blocks: blocks}, nil
}
