package workers

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/crypto/blake2s"

	"github.com/Vasudevshetty/studysyncs/apperr"
	"github.com/Vasudevshetty/studysyncs/index"
)

// maxSectionDepth caps the heading hierarchy carried into section paths.
const maxSectionDepth = 4

// ChunkMarkdown splits a textbook markdown document into one chunk per
// heading section. Chunk ids are derived from the source URI and the
// section path, so re-indexing the same document overwrites its chunks
// instead of piling up duplicates.
func ChunkMarkdown(sourceURI string, markdown []byte) ([]index.ChunkModel, error) {
	sections := parseMarkdownSections(markdown)
	if len(sections) == 0 {
		return nil, apperr.Newf(apperr.EmptyResult, "no sections found in %s", sourceURI)
	}

	chunks := make([]index.ChunkModel, 0, len(sections))
	for _, sec := range sections {
		secHash := hash(sourceURI + strings.Join(sec.path, "|"))

		chunks = append(chunks, index.ChunkModel{
			ChunkID:     fmt.Sprintf("%s-%s", sec.path[len(sec.path)-1], secHash),
			Title:       sec.path[len(sec.path)-1],
			SectionPath: strings.Join(sec.path, " > "),
			SourceURI:   sourceURI,
			Body:        sec.body,
		})
	}
	return chunks, nil
}

func hash(s string) string {
	h, _ := blake2s.New256(nil)
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))[:10]
}

type markdownSection struct {
	path []string
	body string
}

func parseMarkdownSections(md []byte) []markdownSection {
	var out []markdownSection

	reader := text.NewReader(md)
	root := goldmark.DefaultParser().Parse(reader)

	var currentPath []string
	var buf bytes.Buffer

	flush := func() {
		if len(currentPath) > 0 && strings.TrimSpace(buf.String()) != "" {
			dst := append([]string(nil), currentPath...)
			out = append(out, markdownSection{path: dst, body: strings.TrimSpace(buf.String())})
		}
		buf.Reset()
	}

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			flush()
			headingText := string(h.Text(md))
			if h.Level <= maxSectionDepth {
				if len(currentPath) >= h.Level {
					currentPath = currentPath[:h.Level-1]
				}
				currentPath = append(currentPath, headingText)
			}
			// heading text lives in the path, not the body
			return ast.WalkSkipChildren, nil
		}
		if entering {
			segment := n.Text(md)
			if len(segment) > 0 {
				buf.Write(segment)
			}
			if n.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	flush()

	return out
}
