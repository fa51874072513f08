package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// NoFileValue is the placeholder used when a submission has no file.
const NoFileValue = "N/A"

// FileLinkNode is a link to an uploaded file rendered as a button.
type FileLinkNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

// KindFileLink is the node kind for FileLinkNode.
var KindFileLink = ast.NewNodeKind("FileLink")

func (n *FileLinkNode) Kind() ast.NodeKind {
	return KindFileLink
}

func (n *FileLinkNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

var fileLinkPrefix = []byte("[!file|")

// fileLinkParser parses [!file|Label](URL).
type fileLinkParser struct{}

func (p *fileLinkParser) Trigger() []byte {
	return []byte{'['}
}

func (p *fileLinkParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, fileLinkPrefix)
	if !ok {
		return nil
	}

	label, rest, ok := bytes.Cut(rest, []byte("]("))
	if !ok || bytes.ContainsRune(label, ']') {
		return nil
	}
	url, _, ok := bytes.Cut(rest, []byte(")"))
	if !ok {
		return nil
	}

	block.Advance(len(fileLinkPrefix) + len(label) + 2 + len(url) + 1)

	return &FileLinkNode{
		URL:   bytes.TrimSpace(url),
		Label: label,
	}
}

type fileLinkRenderer struct {
	html.Config
}

func (r *fileLinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindFileLink, r.render)
}

func (r *fileLinkRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*FileLinkNode)
	if len(n.URL) == 0 || string(n.URL) == NoFileValue {
		_, _ = w.WriteString(`<em class="no-file">No file attached</em>`)
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, true)))
	_, _ = w.WriteString(`" class="btn">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

type fileLinkExtension struct{}

func (e *fileLinkExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&fileLinkParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&fileLinkRenderer{Config: html.NewConfig()}, 50),
	))
}

// NewFileLinkExtension enables the [!file|Label](url) syntax.
func NewFileLinkExtension() goldmark.Extender {
	return &fileLinkExtension{}
}
