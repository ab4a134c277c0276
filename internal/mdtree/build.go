// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdtree parses GitHub-flavored markdown into a small tagged-union
// tree that the task extractor walks. Parsing is delegated to goldmark; this
// package only reshapes goldmark's AST into the five node variants and folds
// task-list checkboxes into their list items.
package mdtree

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// gfm is safe for concurrent use; goldmark parsers hold no per-document state.
var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Build parses src as GitHub-flavored markdown and returns the document root.
// The only failure is input that is not valid UTF-8 text.
func Build(src []byte) (*Container, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("markdown input is not valid UTF-8 (first bad byte at offset %d)", firstInvalid(src))
	}

	doc := gfm.Parser().Parse(text.NewReader(src))
	b := builder{src: src}
	return &Container{
		Kind:     doc.Kind().String(),
		Children: b.children(doc),
	}, nil
}

type builder struct {
	src []byte
}

func (b builder) convert(n ast.Node) Node {
	switch n := n.(type) {
	case *ast.ListItem:
		return &ListItem{
			Check:    b.checkState(n),
			Children: b.children(n),
		}
	case *ast.Paragraph, *ast.TextBlock:
		return &Paragraph{Children: b.children(n)}
	}

	if !n.HasChildren() {
		return &Other{Kind: n.Kind().String()}
	}
	return &Container{
		Kind:     n.Kind().String(),
		Children: b.children(n),
	}
}

// children converts the children of n, merging adjacent text segments into
// a single Text node and dropping task checkboxes.
func (b builder) children(n ast.Node) []Node {
	var (
		out  []Node
		open *Text
	)
	appendText := func(s string) {
		if open == nil {
			open = &Text{}
			out = append(out, open)
		}
		open.Value += s
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *extast.TaskCheckBox:
			if marker, ok := b.checkboxMarker(n); !ok {
				appendText(marker)
			}
		case *ast.Text:
			if c.IsRaw() {
				appendText(string(c.Segment.Value(b.src)))
			} else {
				appendText(decodeText(c.Segment.Value(b.src)))
			}
			if c.SoftLineBreak() {
				appendText("\n")
			}
			if c.HardLineBreak() {
				open = nil
				out = append(out, &Other{Kind: "HardLineBreak"})
			}
		case *ast.String:
			appendText(string(c.Value))
		default:
			open = nil
			out = append(out, b.convert(c))
		}
	}

	if open != nil {
		open.Value = strings.TrimSuffix(open.Value, "\n")
	}
	return out
}

// checkState reads the GFM checkbox goldmark places as the first inline of
// the item's first block.
func (b builder) checkState(li *ast.ListItem) CheckState {
	first := li.FirstChild()
	if first == nil {
		return NotCheckbox
	}
	cb, ok := first.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return NotCheckbox
	}
	if _, ok := b.checkboxMarker(first); !ok {
		return NotCheckbox
	}
	if cb.IsChecked {
		return Checked
	}
	return Unchecked
}

// checkboxMarker returns the "[ ]" or "[x]" literal opening block and
// whether it is followed by whitespace or the end of the line. goldmark also
// accepts "[x]text", which GFM does not treat as a task.
func (b builder) checkboxMarker(block ast.Node) (string, bool) {
	lines := block.Lines()
	if lines == nil || lines.Len() == 0 {
		return "", true
	}
	seg := lines.At(0)
	line := bytes.TrimLeft(seg.Value(b.src), " \t")
	if len(line) < 3 || line[0] != '[' || line[2] != ']' {
		return "", true
	}
	return string(line[:3]), len(line) == 3 || util.IsSpace(line[3])
}

var charRef = regexp.MustCompile(`^&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[A-Za-z][A-Za-z0-9]{1,31});`)

// decodeText resolves backslash escapes and character references in a text
// segment in one left-to-right pass, so an escaped "\&amp;" stays "&amp;".
func decodeText(seg []byte) string {
	if bytes.IndexAny(seg, `\&`) < 0 {
		return string(seg)
	}
	var sb strings.Builder
	for i := 0; i < len(seg); {
		c := seg[i]
		if c == '\\' && i+1 < len(seg) && util.IsPunct(seg[i+1]) {
			sb.WriteByte(seg[i+1])
			i += 2
			continue
		}
		if c == '&' {
			if ref := charRef.Find(seg[i:]); ref != nil {
				if ref[1] == '#' {
					sb.Write(util.ResolveNumericReferences(ref))
				} else {
					sb.Write(util.ResolveEntityNames(ref))
				}
				i += len(ref)
				continue
			}
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String()
}

func firstInvalid(src []byte) int {
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
