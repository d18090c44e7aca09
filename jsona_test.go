package jsona

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsona-lang/jsona-go/parser"
	"github.com/jsona-lang/jsona-go/token"
)

func TestLoadStringRoundTrip(t *testing.T) {
	root, header, err := Load(`{b: 1, a: [1, 2, 3,], c: "x" @tag(v = 1)}`)
	require.NoError(t, err)
	require.Empty(t, header)

	out, err := String(root, header)
	require.NoError(t, err)

	root2, header2, err := Load(out)
	require.NoError(t, err)
	out2, err := String(root2, header2)
	require.NoError(t, err)

	require.Equal(t, out, out2)
}

func TestLoadStringRoundTripAnnotatedNonLastElement(t *testing.T) {
	root, header, err := Load(`[1 @a, 2]`)
	require.NoError(t, err)
	require.Len(t, root.Elements, 2)
	require.Len(t, root.Elements[0].Annotations, 1)
	require.Equal(t, "a", root.Elements[0].Annotations[0].Name)

	out, err := String(root, header)
	require.NoError(t, err)

	// The emitter places a scalar's trailing annotation after the comma
	// (spec.md §4.4), so the loader must accept it there too on re-parse.
	root2, header2, err := Load(out)
	require.NoError(t, err)
	out2, err := String(root2, header2)
	require.NoError(t, err)

	require.Equal(t, out, out2)
	require.Len(t, root2.Elements[0].Annotations, 1)
	require.Equal(t, "a", root2.Elements[0].Annotations[0].Name)
}

func TestLoadStringRoundTripAnnotatedNonLastMember(t *testing.T) {
	root, header, err := Load(`{a: 1 @x, b: 2}`)
	require.NoError(t, err)
	require.Len(t, root.Properties[0].Value.Annotations, 1)

	out, err := String(root, header)
	require.NoError(t, err)

	root2, header2, err := Load(out)
	require.NoError(t, err)
	out2, err := String(root2, header2)
	require.NoError(t, err)

	require.Equal(t, out, out2)
	require.Len(t, root2.Properties[0].Value.Annotations, 1)
}

func TestLoadPreservesPropertyOrder(t *testing.T) {
	root, _, err := Load(`{z: 1, a: 2, m: 3}`)
	require.NoError(t, err)
	got := make([]string, len(root.Properties))
	for i, p := range root.Properties {
		got[i] = p.Key
	}
	require.Equal(t, []string{"z", "a", "m"}, got)
}

func TestLoadReturnsHeaderAnnotationsSeparately(t *testing.T) {
	root, header, err := Load(`@doc(name = "x") [1, 2]`)
	require.NoError(t, err)
	require.Len(t, header, 1)
	require.Equal(t, "doc", header[0].Name)
	require.Empty(t, root.Annotations)
}

func TestLoadSyntaxError(t *testing.T) {
	_, _, err := Load(`[1, , 2]`)
	require.Error(t, err)
}

func TestTokenizeFacadeDelegatesToLexer(t *testing.T) {
	toks := Tokenize(`{a: 1}`)
	require.NotEmpty(t, toks)
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

// countingReceiver just counts events, enough to confirm Parse drives the
// stream without building a tree.
type countingReceiver struct {
	n int
}

func (r *countingReceiver) OnEvent(parser.Event) { r.n++ }

func TestParseFacadeDelegatesToParser(t *testing.T) {
	r := &countingReceiver{}
	err := Parse(`{a: 1}`, r)
	require.NoError(t, err)
	require.Equal(t, 4, r.n) // ObjectStart, String(key), Integer, ObjectStop
}

func TestParseFacadeRejectsLexErrors(t *testing.T) {
	r := &countingReceiver{}
	err := Parse(`"unterminated`, r)
	require.Error(t, err)
	var syn *parser.SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestWithIndentChangesNestingWidth(t *testing.T) {
	root, header, err := Load(`{a: 1}`)
	require.NoError(t, err)

	out, err := String(root, header, WithIndent(4))
	require.NoError(t, err)
	require.Contains(t, out, "    a: 1")
}
