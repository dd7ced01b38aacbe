package face

import "fmt"

// Face names shared by the grammar adapters.
const (
	Keyword     = "keyword"
	String      = "string"
	Comment     = "comment"
	Function    = "function"
	Type        = "type"
	Constant    = "constant"
	Number      = "number"
	Variable    = "variable"
	Operator    = "operator"
	Punctuation = "punctuation"
	Macro       = "macro"
	Error       = "error"
	Warning     = "warning"

	Heading    = "markdown-heading"
	Emphasis   = "markdown-emphasis"
	Strong     = "markdown-strong"
	Code       = "markdown-code"
	CodeBlock  = "markdown-code-block"
	Link       = "markdown-link"
	Quote      = "markdown-quote"
	ListMarker = "markdown-list-marker"
	Rule       = "markdown-rule"
)

// RainbowSize is the default bracket palette length.
const RainbowSize = 6

var rainbowColors = [RainbowSize]string{
	"#ffd700", "#da70d6", "#179fff", "#ff8c00", "#3cb371", "#ff6b6b",
}

// RainbowName returns the face name of palette slot i.
func RainbowName(i int) string {
	return fmt.Sprintf("rainbow-%d", i)
}

// RainbowPalette returns the face names of an n-slot palette.
func RainbowPalette(n int) []string {
	if n <= 0 {
		n = RainbowSize
	}
	out := make([]string, n)
	for i := range out {
		out[i] = RainbowName(i)
	}
	return out
}

// RegisterDefaults defines the built-in face set in r.
func RegisterDefaults(r *Registry) {
	r.Define(New(Keyword).WithForeground(MustColor("#569cd6")).WithBold(true))
	r.Define(New(String).WithForeground(MustColor("#ce9178")))
	r.Define(New(Comment).WithForeground(MustColor("#6a9955")).WithItalic(true))
	r.Define(New(Function).WithForeground(MustColor("#dcdcaa")))
	r.Define(New(Type).WithForeground(MustColor("#4ec9b0")))
	r.Define(New(Constant).WithForeground(MustColor("#b5cea8")))
	r.Define(New(Number).WithForeground(MustColor("#b5cea8")))
	r.Define(New(Variable).WithForeground(MustColor("#9cdcfe")))
	r.Define(New(Operator).WithForeground(MustColor("#d4d4d4")))
	r.Define(New(Punctuation).WithForeground(MustColor("#d4d4d4")))
	r.Define(New(Macro).WithForeground(MustColor("#c586c0")))
	r.Define(New(Error).WithForeground(MustColor("#f44747")).WithUnderline(true))
	r.Define(New(Warning).WithForeground(MustColor("#cca700")).WithUnderline(true))

	r.Define(New(Heading).WithForeground(MustColor("#569cd6")).WithBold(true))
	r.Define(New(Emphasis).WithItalic(true))
	r.Define(New(Strong).WithBold(true))
	r.Define(New(Code).WithForeground(MustColor("#ce9178")))
	r.Define(New(CodeBlock).WithForeground(MustColor("#ce9178")))
	r.Define(New(Link).WithForeground(MustColor("#4ec9b0")).WithUnderline(true))
	r.Define(New(Quote).WithForeground(MustColor("#6a9955")).WithItalic(true))
	r.Define(New(ListMarker).WithForeground(MustColor("#c586c0")))
	r.Define(New(Rule).WithForeground(MustColor("#808080")))

	DefineRainbow(r, RainbowSize)
}

// DefineRainbow defines the faces of an n-slot bracket palette. Slots past
// the built-in colors reuse them in order.
func DefineRainbow(r *Registry, n int) {
	if n <= 0 {
		n = RainbowSize
	}
	for i := 0; i < n; i++ {
		r.Define(New(RainbowName(i)).WithForeground(MustColor(rainbowColors[i%RainbowSize])))
	}
}
