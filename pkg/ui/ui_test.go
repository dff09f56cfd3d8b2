package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/dispatcher"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *dispatcher.Result {
	links := types.NewReport("link")
	links.Add(types.EntryResult{Destination: "/home/u/.vimrc", Source: "vimrc", Outcome: types.OutcomeCreated})
	links.Add(types.EntryResult{Destination: "/home/u/.zshrc", Source: "zshrc", Outcome: types.OutcomeAlreadyCorrect})
	links.Add(types.EntryResult{
		Destination: "/home/u/.bashrc",
		Source:      "bashrc",
		Outcome:     types.OutcomeFailed,
		Err:         errors.New(errors.ErrPathBlocked, "/home/u/.bashrc is in the way"),
	})
	links.Add(types.EntryResult{
		Destination: "/home/u/.gitconfig",
		Source:      "gitconfig",
		Outcome:     types.OutcomeFailed,
		Err:         errors.New(errors.ErrLinkIncorrect, "stale target").WithDetail("dangling", true),
	})
	return &dispatcher.Result{Reports: []*types.Report{links}}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			renderer, err := ui.NewRenderer(format, &bytes.Buffer{}, ui.Options{})
			require.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}

	renderer, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{}, ui.Options{})
	assert.Error(t, err)
	assert.Nil(t, renderer)
}

func TestTextRenderer(t *testing.T) {
	t.Run("failures only by default", func(t *testing.T) {
		var buf bytes.Buffer
		renderer, err := ui.NewRenderer(ui.FormatText, &buf, ui.Options{})
		require.NoError(t, err)
		require.NoError(t, renderer.RenderResult(sampleResult()))

		out := buf.String()
		assert.Contains(t, out, "link 1 created, 1 already-correct, 2 failed")
		assert.Contains(t, out, "! /home/u/.bashrc -> bashrc")
		assert.Contains(t, out, "is in the way")
		assert.NotContains(t, out, ".vimrc")
		assert.Contains(t, out, ui.MsgSomeFailed)
		assert.NotContains(t, out, "\x1b[", "plain text has no escape codes")
	})

	t.Run("verbose lists every entry", func(t *testing.T) {
		var buf bytes.Buffer
		renderer, err := ui.NewRenderer(ui.FormatText, &buf, ui.Options{Verbose: true})
		require.NoError(t, err)
		require.NoError(t, renderer.RenderResult(sampleResult()))

		assert.Contains(t, buf.String(), "+ /home/u/.vimrc -> vimrc")
		assert.Contains(t, buf.String(), "= /home/u/.zshrc -> zshrc")
	})

	t.Run("directive errors and skips", func(t *testing.T) {
		var buf bytes.Buffer
		renderer, err := ui.NewRenderer(ui.FormatText, &buf, ui.Options{})
		require.NoError(t, err)
		result := &dispatcher.Result{
			Errors: []dispatcher.DirectiveError{{
				Task: config.Task{Directive: "shell", Source: "install.conf.yaml", Line: 4},
				Err:  errors.New(errors.ErrDirectiveUnknown, "action shell not handled"),
			}},
			Skipped: []string{"create"},
		}
		require.NoError(t, renderer.RenderResult(result))

		out := buf.String()
		assert.Contains(t, out, "shell (install.conf.yaml:4)")
		assert.Contains(t, out, "action shell not handled")
		assert.Contains(t, out, "skipped: create")
		assert.Contains(t, out, ui.MsgSomeFailed)
	})

	t.Run("success summary", func(t *testing.T) {
		var buf bytes.Buffer
		renderer, err := ui.NewRenderer(ui.FormatText, &buf, ui.Options{})
		require.NoError(t, err)
		require.NoError(t, renderer.RenderResult(&dispatcher.Result{}))
		assert.Equal(t, ui.MsgAllSucceeded+"\n", buf.String())
	})
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer, err := ui.NewRenderer(ui.FormatJSON, &buf, ui.Options{})
	require.NoError(t, err)
	require.NoError(t, renderer.RenderResult(sampleResult()))

	var decoded struct {
		OK      bool `json:"ok"`
		Reports []struct {
			Directive string `json:"directive"`
			OK        bool   `json:"ok"`
			Entries   []struct {
				Destination string                 `json:"destination"`
				Outcome     string                 `json:"outcome"`
				Error       string                 `json:"error"`
				Code        string                 `json:"code"`
				Details     map[string]interface{} `json:"details"`
			} `json:"entries"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.False(t, decoded.OK)
	require.Len(t, decoded.Reports, 1)
	assert.Equal(t, "link", decoded.Reports[0].Directive)
	entries := decoded.Reports[0].Entries
	require.Len(t, entries, 4)
	assert.Equal(t, "created", entries[0].Outcome)
	assert.Empty(t, entries[0].Code)
	assert.Nil(t, entries[0].Details)

	assert.Equal(t, "failed", entries[2].Outcome)
	assert.Contains(t, entries[2].Error, "in the way")
	assert.Equal(t, string(errors.ErrPathBlocked), entries[2].Code)
	assert.Nil(t, entries[2].Details, "empty details are omitted")

	assert.Equal(t, string(errors.ErrLinkIncorrect), entries[3].Code)
	assert.Equal(t, map[string]interface{}{"dangling": true}, entries[3].Details)
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	renderer, err := ui.NewRenderer(ui.FormatText, &buf, ui.Options{})
	require.NoError(t, err)
	require.NoError(t, renderer.RenderError(errors.New(errors.ErrConfigLoad, "no configuration")))
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "no configuration")
}
