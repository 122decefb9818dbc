package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/czbiohub-sf/maca/internal/cli/output"
	"github.com/czbiohub-sf/maca/internal/cli/testutil"
)

func newTestSession(tissue string) (*replSession, *testutil.TestRenderer) {
	tr := testutil.NewTestRenderer(output.ModeText, false)
	return &replSession{tissue: tissue, r: tr.Renderer}, tr
}

func TestREPL_Quit(t *testing.T) {
	s, _ := newTestSession("")
	assert.True(t, s.handleLine(".quit"))
	assert.True(t, s.handleLine("  .EXIT "))
	assert.False(t, s.handleLine(""))
}

func TestREPL_SelectTissue(t *testing.T) {
	s, tr := newTestSession("")
	assert.Equal(t, "maca> ", s.prompt())

	s.handleLine(".tissue Heart")
	assert.Equal(t, "Heart", s.tissue)
	assert.Equal(t, "maca(Heart)> ", s.prompt())

	s.handleLine(".tissue Atlantis")
	assert.Equal(t, "Heart", s.tissue, "unknown tissue keeps the selection")
	assert.Contains(t, tr.ErrorOutput(), `unknown tissue "Atlantis"`)

	tr.Out.Reset()
	s.handleLine(".tissue")
	assert.Equal(t, "Heart\n", tr.Output())
}

func TestREPL_ExplainRequiresTissue(t *testing.T) {
	s, tr := newTestSession("")
	s.handleLine("Fb_1")
	assert.Contains(t, tr.ErrorOutput(), "no tissue selected")
	assert.Empty(t, tr.Output())
}

func TestREPL_Explain(t *testing.T) {
	s, tr := newTestSession("Heart")
	s.handleLine("Fb_1")
	assert.Contains(t, tr.Output(), "fibroblasts")

	tr.Out.Reset()
	s.handleLine(".explain CMs")
	assert.Contains(t, tr.Output(), "cardiomyocytes")
}

func TestREPL_Listings(t *testing.T) {
	s, tr := newTestSession("Diaphragm")

	s.handleLine(".tissues")
	assert.Contains(t, tr.Output(), "Marrow")

	tr.Out.Reset()
	s.handleLine(".steps")
	assert.Contains(t, tr.Output(), "Diaphragm")

	tr.Out.Reset()
	s.handleLine(".help")
	assert.Contains(t, tr.Output(), ".tissue [name]")
}

func TestREPL_UnknownCommand(t *testing.T) {
	s, tr := newTestSession("Heart")
	assert.False(t, s.handleLine(".frobnicate"))
	assert.Contains(t, tr.ErrorOutput(), "Unknown command: .frobnicate")
}
